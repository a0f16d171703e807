package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single failed rule for one field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is the error type returned by Apply when any rule fails.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details groups messages by field name for JSON error responses.
func (ve ValidationErrors) Details() map[string][]string {
	if len(ve) == 0 {
		return nil
	}

	details := make(map[string][]string, len(ve))
	for _, err := range ve {
		details[err.Field] = append(details[err.Field], err.Message)
	}
	return details
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes the rules in order and returns ValidationErrors collecting
// every failure, or nil when all rules pass.
func Apply(rules ...Rule) error {
	var verrs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			verrs = append(verrs, rule.Error)
		}
	}

	if len(verrs) == 0 {
		return nil
	}

	return verrs
}

// ExtractValidationErrors unwraps ValidationErrors from an error chain.
// Returns nil when the error does not carry validation details.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}

	return nil
}

// IsValidationError reports whether the error carries validation details.
func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
