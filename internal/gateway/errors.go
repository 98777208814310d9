package gateway

import (
	"errors"
	"fmt"
)

// Failure kinds. Callers match them with errors.Is; the *Error wrapper
// carries the HTTP status and the server-provided detail message.
var (
	// ErrUnauthenticated: no credential, or the service answered 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrRemoteRejected: the service answered with any other non-2xx status.
	ErrRemoteRejected = errors.New("rejected by server")
	// ErrUnreachable: the request never produced an HTTP response.
	ErrUnreachable = errors.New("server unreachable")
)

// Error is the uniform failure shape surfaced by every gateway call.
type Error struct {
	Kind   error
	Status int
	Detail string
	cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.cause != nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.cause)
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool { return errors.Is(e.Kind, target) }

func (e *Error) Unwrap() error { return e.cause }
