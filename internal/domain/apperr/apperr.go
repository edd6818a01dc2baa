package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so transports can map it to a
// response without inspecting message text.
type Kind int

const (
	// Internal is any failure that is not the caller's fault (driver errors, bugs).
	Internal Kind = iota
	// NotFound means a referenced entity (typically a product) does not exist.
	NotFound
	// InvalidRequest means a precondition on the request was violated.
	InvalidRequest
	// SeedingFailure means the seeding transaction aborted and was rolled back.
	SeedingFailure
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidRequest:
		return "invalid_request"
	case SeedingFailure:
		return "seeding_failure"
	default:
		return "internal"
	}
}

// Error is the error type returned by the service and seeding layers.
//
// Message is human readable and names the violated precondition; Err, when
// set, is the underlying cause and is reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundf builds a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidRequestf builds an InvalidRequest error with a formatted message.
func InvalidRequestf(format string, args ...any) *Error {
	return &Error{Kind: InvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Seeding wraps cause as a SeedingFailure.
func Seeding(cause error) *Error {
	return &Error{Kind: SeedingFailure, Message: "seeding aborted, changes rolled back", Err: cause}
}

// KindOf reports the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
