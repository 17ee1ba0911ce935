package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized reports that the server rejected the bearer
	// credential. By the time a caller sees it, the stored token has been
	// purged and the session cleared; callers must not duplicate that
	// cleanup.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden reports a failed local role check. No state changes.
	ErrForbidden = errors.New("forbidden")
)

// HTTPError is a non-2xx response for a reason other than a rejected
// credential. Message carries the server-supplied explanation when the
// body was parseable.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// TransportError means no response was received at all. The prior session
// is preserved.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
