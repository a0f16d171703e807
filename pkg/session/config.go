package session

import "time"

type Config struct {
	SigningKey string        `env:"JWT_SIGNING_KEY,required"`            // SigningKey is the HMAC secret used to sign tokens. Must be at least 32 bytes.
	TokenTTL   time.Duration `env:"JWT_TOKEN_TTL" envDefault:"5m"`       // TokenTTL is the lifetime of an issued token.
	Issuer     string        `env:"JWT_ISSUER" envDefault:"authgate"`    // Issuer is the value of the "iss" claim.
}
