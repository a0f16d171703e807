package email

import (
	"fmt"
	"html/template"
	"strings"
)

// Subjects and tags for the OTP delivery messages.
const (
	SubjectVerificationCode = "Your verification code"
	SubjectPasswordReset    = "Your password reset code"

	TagAccountVerification = "otp-account-verification"
	TagPasswordReset       = "otp-password-reset"
)

var otpBodyTmpl = template.Must(template.New("otp").Parse(
	`<p>Your one-time code is <strong>{{.Code}}</strong>.</p>` +
		`<p>It expires in {{.TTL}}. If you did not request it, ignore this email.</p>`))

// OTPMessage renders the delivery email for a one-time code.
// The code is HTML-escaped by the template even though it is generated
// server-side.
func OTPMessage(sendTo, code, ttl string, passwordReset bool) (SendEmailParams, error) {
	subject := SubjectVerificationCode
	tag := TagAccountVerification
	if passwordReset {
		subject = SubjectPasswordReset
		tag = TagPasswordReset
	}

	var sb strings.Builder
	if err := otpBodyTmpl.Execute(&sb, struct {
		Code string
		TTL  string
	}{Code: code, TTL: ttl}); err != nil {
		return SendEmailParams{}, fmt.Errorf("render otp message: %w", err)
	}

	return SendEmailParams{
		SendTo:   sendTo,
		Subject:  subject,
		BodyHTML: sb.String(),
		Tag:      tag,
	}, nil
}
