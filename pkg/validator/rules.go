package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// International format with optional country code, E.164-ish.
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

// MinLen validates that a string is at least min bytes long.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

// Len validates that a string is exactly the given length.
func Len(field, value string, exact int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) == exact
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be exactly %d characters long", exact),
		},
	}
}

// ValidEmail validates that a string is a parseable address with a dotted
// domain. Stricter than RFC 5322 alone: display names and bare hostnames
// are rejected because they are never valid web signup input.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 {
				return false
			}

			domain := parts[1]
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}

			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// ValidPhone validates an international phone number after normalization.
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return phoneRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid phone number",
		},
	}
}

// NumericString validates that a string contains only digits.
func NumericString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return numericStringRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only digits",
		},
	}
}
