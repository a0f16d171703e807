package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router exposes the JSON authentication API.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", svc.handleRegister)
	r.Post("/login", svc.handleLogin)
	r.Post("/verify-otp", svc.handleVerifyOTP)
	r.Post("/resend-otp", svc.handleResendOTP)
	r.Post("/forgot-password", svc.handleForgotPassword)
	r.Post("/reset-password", svc.handleResetPassword)

	r.Group(func(protected chi.Router) {
		protected.Use(svc.Middleware())
		protected.Get("/me", handleMe)
	})

	return r
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	// The middleware guarantees a user; nil means the route was mounted
	// without it.
	if user == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	writeCurrentUser(w, user)
}
