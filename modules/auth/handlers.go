package auth

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/otp"
)

// Response messages match the public API contract; clients key off them.
const (
	msgOTPSentVerification  = "OTP sent for account verification"
	msgOTPSentToEmail       = "OTP sent to email"
	msgOTPVerified          = "OTP verified"
	msgOTPResent            = "OTP resent"
	msgOTPSentPasswordReset = "OTP sent for password reset"
	msgPasswordResetDone    = "Password reset successful"
)

type messageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

type tokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Verified    bool   `json:"verified"`
}

func writeCurrentUser(w http.ResponseWriter, user *User) {
	core.JSON(w, http.StatusOK, userResponse{
		ID:          user.ID.String(),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Verified:    user.Verified,
	})
}

// translateError maps service and domain errors onto the HTTP taxonomy.
// Validation errors and HTTPError pass through for core.JSONError.
func translateError(err error) error {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		return core.ErrBadRequest.WithMessage("Email already registered")
	case errors.Is(err, ErrPhoneAlreadyExists):
		return core.ErrBadRequest.WithMessage("Phone number already registered")
	case errors.Is(err, ErrInvalidCredentials):
		return core.ErrForbidden.WithMessage("Invalid credentials")
	case errors.Is(err, ErrUserNotFound):
		return core.ErrNotFound.WithMessage("User not found")
	case errors.Is(err, otp.ErrExpired):
		return core.NewHTTPError(http.StatusBadRequest, "otp_expired", "OTP expired")
	case errors.Is(err, otp.ErrInvalidCode), errors.Is(err, otp.ErrNotFound):
		return core.NewHTTPError(http.StatusBadRequest, "invalid_otp", "Invalid OTP")
	default:
		return err
	}
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.Sanitize()
	if err := req.Validate(); err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := s.Register(r.Context(), req)
	if err != nil {
		core.JSONError(w, translateError(err))
		return
	}

	core.JSON(w, http.StatusCreated, messageResponse{
		Message: msgOTPSentVerification,
		Email:   user.Email,
	})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.Sanitize()
	if err := req.Validate(); err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := s.Login(r.Context(), req)
	if err != nil {
		core.JSONError(w, translateError(err))
		return
	}

	core.JSON(w, http.StatusOK, messageResponse{
		Message: msgOTPSentToEmail,
		Email:   user.Email,
	})
}

func (s *Service) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.Sanitize()
	if err := req.Validate(); err != nil {
		core.JSONError(w, err)
		return
	}

	token, err := s.VerifyOTP(r.Context(), req)
	if err != nil {
		core.JSONError(w, translateError(err))
		return
	}

	core.JSON(w, http.StatusOK, tokenResponse{
		Message:     msgOTPVerified,
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (s *Service) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req ResendOTPRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.Sanitize()
	if err := req.Validate(); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := s.ResendOTP(r.Context(), req); err != nil {
		core.JSONError(w, translateError(err))
		return
	}

	core.JSON(w, http.StatusOK, messageResponse{Message: msgOTPResent})
}

func (s *Service) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.Sanitize()
	if err := req.Validate(); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := s.ForgotPassword(r.Context(), req); err != nil {
		core.JSONError(w, translateError(err))
		return
	}

	core.JSON(w, http.StatusOK, messageResponse{
		Message: msgOTPSentPasswordReset,
		Email:   req.Email,
	})
}

func (s *Service) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}
	req.Sanitize()
	if err := req.Validate(); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := s.ResetPassword(r.Context(), req); err != nil {
		core.JSONError(w, translateError(err))
		return
	}

	core.JSON(w, http.StatusOK, messageResponse{Message: msgPasswordResetDone})
}
