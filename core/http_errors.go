package core

import "net/http"

// HTTPError carries an HTTP status code together with a stable machine
// code and a human-readable message rendered into the error envelope.
type HTTPError struct {
	Code    int    // HTTP status code
	Key     string // Machine-readable error code (e.g., "not_found")
	Message string // Human-readable message
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// WithMessage returns a copy of the error with a custom message,
// keeping the status code and key.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request", Message: http.StatusText(http.StatusBadRequest)}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized", Message: http.StatusText(http.StatusUnauthorized)}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Key: "forbidden", Message: http.StatusText(http.StatusForbidden)}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: http.StatusText(http.StatusNotFound)}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "validation_error", Message: "Validation failed"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error", Message: http.StatusText(http.StatusInternalServerError)}
)

// NewHTTPError creates a custom HTTP error.
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}
