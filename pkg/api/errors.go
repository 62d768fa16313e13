package api

// User-facing messages the client falls back to when the server gives
// nothing better. The wording is part of the product surface; change it
// and every scripted test of the login flow changes with it.
const (
	DefaultUserCreatedMessage = "User created successfully"
	GenericRetryMessage       = "Something went wrong. Please try again."
	FormUnavailableMessage    = "Failed to load form. Please try again later."
)

// AuthError reports a failed login attempt. Rejected is true when the
// server answered and declined (the message is the server's); false when
// the request never completed, in which case Message is the generic
// retry text. Either way the user may resubmit.
type AuthError struct {
	Message  string
	Rejected bool
	Err      error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a failed schema retrieval. It is fatal to the
// session: the only recovery is returning to the login gate. Message is
// always the fixed failed-to-load text; Err keeps the cause for
// diagnostics.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return FormUnavailableMessage }

func (e *FetchError) Unwrap() error { return e.Err }
