package auth

import (
	"github.com/dmitrymomot/authgate/pkg/sanitizer"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

const minPasswordLen = 8

type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (r *RegisterRequest) Sanitize() {
	r.FirstName = sanitizer.Trim(r.FirstName)
	r.LastName = sanitizer.Trim(r.LastName)
	r.Email = sanitizer.NormalizeEmail(r.Email)
	r.PhoneNumber = sanitizer.NormalizePhone(r.PhoneNumber)
}

func (r RegisterRequest) Validate() error {
	return validator.Apply(
		validator.Required("first_name", r.FirstName),
		validator.Required("last_name", r.LastName),
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("phone_number", r.PhoneNumber),
		validator.ValidPhone("phone_number", r.PhoneNumber),
		validator.Required("password", r.Password),
		validator.MinLen("password", r.Password, minPasswordLen),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Sanitize() {
	r.Email = sanitizer.NormalizeEmail(r.Email)
}

func (r LoginRequest) Validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("password", r.Password),
	)
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"code"`
}

func (r *VerifyOTPRequest) Sanitize() {
	r.Email = sanitizer.NormalizeEmail(r.Email)
	r.OTP = sanitizer.Trim(r.OTP)
}

func (r VerifyOTPRequest) Validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("code", r.OTP),
		validator.Len("code", r.OTP, 6),
		validator.NumericString("code", r.OTP),
	)
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

func (r *ResendOTPRequest) Sanitize() {
	r.Email = sanitizer.NormalizeEmail(r.Email)
}

func (r ResendOTPRequest) Validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Sanitize() {
	r.Email = sanitizer.NormalizeEmail(r.Email)
}

func (r ForgotPasswordRequest) Validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
	)
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp_code"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Sanitize() {
	r.Email = sanitizer.NormalizeEmail(r.Email)
	r.OTP = sanitizer.Trim(r.OTP)
}

func (r ResetPasswordRequest) Validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("otp_code", r.OTP),
		validator.Len("otp_code", r.OTP, 6),
		validator.NumericString("otp_code", r.OTP),
		validator.Required("new_password", r.NewPassword),
		validator.MinLen("new_password", r.NewPassword, minPasswordLen),
	)
}
