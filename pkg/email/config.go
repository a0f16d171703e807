package email

// Config holds email service configuration.
// Postmark tokens are optional to support development environments where
// sending is replaced by the dev sender. SenderEmail establishes the sender
// identity for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	DevMailDir           string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"` // DevMailDir is where the dev sender writes outbound mail.
}
