package auth

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/authgate/core"
)

// Middleware authenticates requests by the Authorization bearer token
// and stores the resolved user in the request context. Requests without
// a valid token are rejected with 401.
func (s *Service) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				core.JSONError(w, core.ErrUnauthorized.WithMessage("Missing bearer token"))
				return
			}

			user, err := s.CurrentUser(r.Context(), token)
			if err != nil {
				core.JSONError(w, core.ErrUnauthorized.WithMessage("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
