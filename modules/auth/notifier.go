package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/otp"
)

// EmailNotifier delivers one-time codes over email. It satisfies
// otp.Notifier so the challenge manager stays transport-agnostic.
type EmailNotifier struct {
	sender email.EmailSender
}

func NewEmailNotifier(sender email.EmailSender) *EmailNotifier {
	return &EmailNotifier{sender: sender}
}

var _ otp.Notifier = (*EmailNotifier)(nil)

func (n *EmailNotifier) SendCode(ctx context.Context, sendTo string, ch otp.Challenge) error {
	ttl := formatTTL(time.Until(ch.ExpiresAt))
	msg, err := email.OTPMessage(sendTo, ch.Code, ttl, ch.Purpose == otp.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}
	return n.sender.SendEmail(ctx, msg)
}

func formatTTL(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
