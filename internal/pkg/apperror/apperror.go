package apperror

import "net/http"

// Kind is the coarse classification callers branch on. The rental domain
// deliberately reports unknown ids, self-booking and wrong-role actors all
// as KindNotFound; Reason keeps those cases distinguishable without
// changing the outward contract.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindInvalidRequest Kind = "invalid_request"
)

// Reason identifies the specific rule behind an error. Values are defined
// by the package that raises the error.
type Reason string

// AppError is a custom error type that carries an HTTP status code, a
// coarse kind and a fine-grained reason.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Coarse classification
	Reason  Reason // Specific rule that failed
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code int, kind Kind, reason Reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Reason:  reason,
		Message: message,
	}
}

// NotFound creates a 404 AppError of KindNotFound.
func NotFound(reason Reason, message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, reason, message)
}

// InvalidRequest creates a 400 AppError of KindInvalidRequest.
func InvalidRequest(reason Reason, message string) *AppError {
	return New(http.StatusBadRequest, KindInvalidRequest, reason, message)
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, kind Kind, reason Reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}
