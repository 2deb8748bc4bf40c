package apperror

import "fmt"

// Kind is a stable, machine-readable error category. Several kinds share an
// HTTP status code, so the code alone is not enough to tell them apart.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindConflict         Kind = "conflict"
	KindInvalidState     Kind = "invalid_state"
	KindInvalidTimeRange Kind = "invalid_time_range"
	KindUnknownEnum      Kind = "unknown_enum"
	KindInvalidArgument  Kind = "invalid_argument"
)

// AppError is a custom error type that includes an HTTP status code and a
// stable error kind.
type AppError struct {
	Kind    Kind   // Stable category, e.g. "conflict"
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes AppErrors comparable by kind and message, so sentinel errors
// built with New keep working with errors.Is after wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New creates a new AppError with a kind, status code and message.
func New(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(kind Kind, code int, format string, args ...any) *AppError {
	return New(kind, code, fmt.Sprintf(format, args...))
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
