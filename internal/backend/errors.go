package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced entity does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the backend rejected the request (4xx).
	ErrValidation = errors.New("validation error")

	// ErrUnavailable indicates a transient failure that survived all
	// retries, or a short-circuit while the circuit breaker is open.
	ErrUnavailable = errors.New("backend unavailable")
)

// transientError marks failures that are worth retrying: timeouts,
// connection errors, and 5xx responses.
type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return fmt.Sprintf("transient backend error: %v", e.err)
}

func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsUnavailable reports whether err is a transient/circuit-open failure.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
