package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRegex      = regexp.MustCompile(`\.{2,}`)
	nonDigitRegex = regexp.MustCompile(`[^0-9+]`)
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail lowercases the address and collapses consecutive dots in the
// local part. Invalid shapes are returned as-is; validation rejects them later.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// NormalizePhone strips formatting characters (spaces, dashes, parentheses)
// so that the same number always hits the same uniqueness constraint.
// A single leading plus sign is preserved.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = nonDigitRegex.ReplaceAllString(phone, "")

	if i := strings.LastIndex(phone, "+"); i > 0 {
		phone = strings.ReplaceAll(phone, "+", "")
	}

	return phone
}
