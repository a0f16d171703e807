package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/otp"
	"github.com/dmitrymomot/authgate/pkg/session"
)

// Service orchestrates registration, login, code verification and
// password reset on top of the user store, the OTP challenge manager
// and the session token issuer.
type Service struct {
	storage    Storage
	otpMgr     *otp.Manager
	sessions   *session.Service
	log        *slog.Logger
	bcryptCost int
}

// ServiceOption configures optional service parameters.
type ServiceOption func(*Service)

// WithServiceLogger sets a custom logger.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBcryptCost overrides the password hashing cost. Values outside
// the bcrypt range fall back to the default cost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func NewService(storage Storage, otpMgr *otp.Manager, sessions *session.Service, opts ...ServiceOption) *Service {
	s := &Service{
		storage:    storage,
		otpMgr:     otpMgr,
		sessions:   sessions,
		log:        slog.Default(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an unverified account and issues an account
// verification code to the new user's email.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Verified:     false,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.otpMgr.Issue(ctx, user.ID, user.Email, otp.PurposeAccountVerification); err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		logger.UserID(user.ID.String()),
		logger.Email(user.Email),
		logger.Event("register"),
	)
	return user, nil
}

// Login checks the password and, on success, issues a fresh account
// verification code. The session token is only granted after the code
// is verified. Unknown email and wrong password collapse into one
// opaque error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, error) {
	user, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.otpMgr.Issue(ctx, user.ID, user.Email, otp.PurposeAccountVerification); err != nil {
		return nil, fmt.Errorf("issue login code: %w", err)
	}

	s.log.InfoContext(ctx, "login challenge issued",
		logger.UserID(user.ID.String()),
		logger.Event("login"),
	)
	return user, nil
}

// VerifyOTP consumes an account verification code, marks the account
// verified and returns a signed session token.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (string, error) {
	user, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}

	if err := s.otpMgr.Verify(ctx, user.ID, req.OTP, otp.PurposeAccountVerification); err != nil {
		return "", err
	}

	if !user.Verified {
		if err := s.storage.SetVerified(ctx, user.ID, true); err != nil {
			return "", err
		}
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}

	s.log.InfoContext(ctx, "otp verified",
		logger.UserID(user.ID.String()),
		logger.Event("verify_otp"),
	)
	return token, nil
}

// ResendOTP replaces any pending account verification code with a new
// one for the given email.
func (s *Service) ResendOTP(ctx context.Context, req ResendOTPRequest) error {
	user, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if _, err := s.otpMgr.Issue(ctx, user.ID, user.Email, otp.PurposeAccountVerification); err != nil {
		return fmt.Errorf("reissue verification code: %w", err)
	}
	return nil
}

// ForgotPassword issues a password reset code. The user must exist: no
// challenge is created for unknown emails.
func (s *Service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	user, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if _, err := s.otpMgr.Issue(ctx, user.ID, user.Email, otp.PurposePasswordReset); err != nil {
		return fmt.Errorf("issue reset code: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested",
		logger.UserID(user.ID.String()),
		logger.Email(user.Email),
		logger.Event("forgot_password"),
	)
	return nil
}

// ResetPassword consumes a password reset code and replaces the stored
// password hash.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if err := s.otpMgr.Verify(ctx, user.ID, req.OTP, otp.PurposePasswordReset); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.storage.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "password reset",
		logger.UserID(user.ID.String()),
		logger.Event("reset_password"),
	)
	return nil
}

// CurrentUser loads the account behind a verified session token's
// subject. Used by the bearer middleware and /me.
func (s *Service) CurrentUser(ctx context.Context, token string) (*User, error) {
	userID, err := s.sessions.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.storage.GetUserByID(ctx, userID)
}
