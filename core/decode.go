package core

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// DecodeJSON reads the request body into v. Strict mode: unknown fields,
// trailing data, and non-JSON content types are rejected. Failures are
// returned as HTTPError so handlers can pass them straight to JSONError.
func DecodeJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/json" {
		return ErrBadRequest.WithMessage("expected application/json content type")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrBadRequest.WithMessage("empty request body")
		}
		return ErrBadRequest.WithMessage("invalid JSON body")
	}

	// Ensure entire body was consumed.
	if err := decoder.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return ErrBadRequest.WithMessage("unexpected data after JSON object")
	}

	return nil
}
