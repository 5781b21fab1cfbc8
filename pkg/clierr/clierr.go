package clierr

import "errors"

// Type categorizes a CLI-facing error for consistent messaging & exit codes.
type Type string

const (
	Validation Type = "validation"
	NotFound   Type = "not_found"
	Gateway    Type = "gateway"
	Declined   Type = "declined"
	Internal   Type = "internal"
)

// Error is a structured user-facing error.
type Error struct {
	Type    Type
	Message string
	Err     error // optional underlying error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// ExitCode maps the error type to a process exit code.
// A declined confirmation is not a failure.
func (e *Error) ExitCode() int {
	if e.Type == Declined {
		return 0
	}
	return 1
}

// New constructs a new CLI Error.
func New(t Type, msg string, err error) *Error { return &Error{Type: t, Message: msg, Err: err} }

// IsType reports whether err wraps a CLI Error of type t.
func IsType(err error, t Type) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Type == t
}
