// Package orchestrator owns the session state machine: the auth gate,
// the schema fetch, section navigation with validation, and the final
// summary. Terminal interaction is delegated to the tui renderer; remote
// calls to the api client. All session mutation happens on this
// package's call stack, one event at a time.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/formfill/formfill/pkg/api"
	"github.com/formfill/formfill/pkg/renderers/tui"
	"github.com/formfill/formfill/pkg/schema"
	"github.com/formfill/formfill/pkg/session"
	"github.com/formfill/formfill/pkg/validation"
)

// State tracks where the orchestrator sits between login and summary.
type State int

const (
	// StateLoading covers the schema fetch being in flight (and the idle
	// stretch before a session exists).
	StateLoading State = iota
	// StateReady means a schema is loaded and sections are navigable.
	StateReady
	// StateFailed is terminal for the session: the schema fetch failed
	// and the only exit leads back to the auth gate.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Client is the slice of the remote service the orchestrator needs.
// *api.Client satisfies it.
type Client interface {
	CreateUser(ctx context.Context, rollNumber, name string) (string, error)
	GetForm(ctx context.Context, rollNumber string) (schema.Form, error)
}

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithClient injects the remote service client.
func WithClient(client Client) Option {
	return func(o *Orchestrator) {
		o.client = client
	}
}

// WithRenderer injects the terminal renderer.
func WithRenderer(renderer *tui.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer != nil {
			o.renderer = renderer
		}
	}
}

// WithLogger attaches a diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator runs form sessions until the user quits.
type Orchestrator struct {
	client   Client
	renderer *tui.Renderer
	logger   *slog.Logger
	state    State
}

// New constructs an orchestrator. A client must be supplied via
// WithClient before Run is called.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		renderer: tui.New(),
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// State reports the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Run loops full sessions (login, fetch, fill, summary) until the user
// declines to continue or aborts. A user abort (Ctrl+C) is a clean
// exit, not an error.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.client == nil {
		return errors.New("orchestrator: client is not configured")
	}

	for {
		again, err := o.runSession(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				o.logger.Debug("session aborted by user")
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// runSession takes one user from the auth gate to the summary (or a
// fetch failure). It reports whether another session should start. All
// session state is local to this call: returning discards it, which is
// what logout means.
func (o *Orchestrator) runSession(ctx context.Context) (bool, error) {
	user, err := o.login(ctx)
	if err != nil {
		return false, err
	}

	o.state = StateLoading
	form, err := o.client.GetForm(ctx, user.RollNumber)
	if err != nil {
		o.state = StateFailed
		o.logger.Warn("schema fetch failed", "rollNumber", user.RollNumber, "error", err)
		o.renderer.Error(ctx, userMessage(err))
		// The only exit from a failed session leads back to the gate.
		return o.renderer.Ask(ctx, "Return to login?", true)
	}

	sess := session.New(user, form)
	o.state = StateReady
	o.logger.Info("session ready", "session", sess.ID(), "sections", sess.SectionCount())
	o.renderer.Title(form.FormTitle)

	if err := o.fill(ctx, sess); err != nil {
		return false, err
	}

	return o.renderer.Ask(ctx, "Fill another form?", false)
}

// login collects credentials and registers the user. Client-side
// validation happens inside Credentials; a blank field never reaches the
// network. Server rejections and transport failures both surface inline
// and loop back for resubmission. The prompt loop is serial, so at most
// one submission is ever in flight.
func (o *Orchestrator) login(ctx context.Context) (session.User, error) {
	for {
		user, err := o.renderer.Credentials(ctx)
		if err != nil {
			return session.User{}, err
		}

		message, err := o.client.CreateUser(ctx, user.RollNumber, user.Name)
		if err != nil {
			var authErr *api.AuthError
			if errors.As(err, &authErr) {
				o.logger.Info("login attempt failed", "rollNumber", user.RollNumber, "rejected", authErr.Rejected)
				o.renderer.Error(ctx, authErr.Message)
				continue
			}
			return session.User{}, err
		}

		o.logger.Info("user created", "rollNumber", user.RollNumber)
		o.renderer.Notice(ctx, message)
		return user, nil
	}
}

// fill runs the section loop until a successful submit. Next and Submit
// validate the current section and replace the whole error map with the
// result; Previous never validates. Advancing redraws from the top of
// the next section, which is all scroll-to-top means in a terminal.
func (o *Orchestrator) fill(ctx context.Context, sess *session.Session) error {
	for {
		step, err := o.renderer.SectionStep(ctx, sess)
		if err != nil {
			return err
		}

		switch step.Action {
		case tui.ActionEdit:
			fields := sess.Section().Fields
			if step.Field < 0 || step.Field >= len(fields) {
				return fmt.Errorf("orchestrator: field index %d out of range", step.Field)
			}
			if err := o.renderer.EditField(ctx, sess, fields[step.Field]); err != nil {
				return err
			}

		case tui.ActionPrevious:
			sess.Retreat()

		case tui.ActionNext:
			errs, ok := validation.CheckSection(sess.Section(), sess.Values())
			sess.ReplaceErrors(errs)
			if ok {
				sess.Advance()
			} else {
				o.logger.Debug("section blocked", "section", sess.Section().SectionID, "errors", len(errs))
			}

		case tui.ActionSubmit:
			errs, ok := validation.CheckSection(sess.Section(), sess.Values())
			sess.ReplaceErrors(errs)
			if ok {
				o.logger.Info("form submitted", "session", sess.ID())
				o.renderer.Summary(sess)
				return nil
			}
		}
	}
}

// userMessage picks the string shown for a fetch failure. FetchError
// already carries the fixed user-facing text; anything else falls back
// to it too, since the user can do nothing more specific about it.
func userMessage(err error) string {
	var fetchErr *api.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Error()
	}
	return api.FormUnavailableMessage
}
