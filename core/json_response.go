package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/validator"
)

// ErrorResponse is the envelope rendered for every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// JSONError renders err as an error envelope. Validation errors become
// 422 with a per-field details map, HTTPError keeps its status code and
// message, anything else is reported as an opaque 500.
func JSONError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: ErrInternalServerError.Message,
	}

	var httpErr HTTPError
	if valErrs := validator.ExtractValidationErrors(err); valErrs != nil {
		status = ErrUnprocessableEntity.Code
		detail.Code = ErrUnprocessableEntity.Key
		detail.Message = ErrUnprocessableEntity.Message
		detail.Details = valErrs.Details()
	} else if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = httpErr.Error()
	}

	JSON(w, status, ErrorResponse{Error: detail})
}
