package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authgate/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and trim", "  Alice@Example.COM  ", "alice@example.com"},
		{"consecutive dots collapsed", "a..b@example.com", "a.b@example.com"},
		{"leading dot stripped", ".alice@example.com", "alice@example.com"},
		{"plus tag preserved", "Alice+Tag@example.com", "alice+tag@example.com"},
		{"invalid shape untouched", "not-an-email", "not-an-email"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces and dashes stripped", "+254 712-345-678", "+254712345678"},
		{"parentheses stripped", "(0712) 345678", "0712345678"},
		{"plain number untouched", "0712345678", "0712345678"},
		{"misplaced plus removed", "07+12345678", "0712345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizePhone(tt.input))
		})
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", sanitizer.Trim("  hello \n"))
	assert.Equal(t, "", sanitizer.Trim("   "))
}
