package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000 // codes are uniform over [100000, 999999]
)

// GenerateCode returns a uniformly random 6-digit numeric code.
// crypto/rand keeps codes unpredictable from external input; uniqueness
// across users or purposes is not required.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
