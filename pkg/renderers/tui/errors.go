package tui

import "errors"

// ErrAborted signals the user aborted input (e.g. Ctrl+C). Callers treat
// it as a clean exit rather than a failure.
var ErrAborted = errors.New("tui: aborted")
