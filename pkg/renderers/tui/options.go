package tui

import "io"

// Option configures the renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver, mainly so tests can
// script answers instead of driving a real terminal.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput redirects the non-interactive view output (section screens,
// summaries, notices).
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		if out != nil {
			r.out = out
		}
	}
}
