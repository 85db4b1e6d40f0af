// Package email provides the transactional email providers. Two
// interchangeable back-ends implement the same Provider interface; settings
// rows select one per acting admin, never a string switch at call sites.
package email

import "context"

// Provider names stored in email_provider_settings.provider.
const (
	ProviderBrevo = "brevo"
	ProviderSMTP  = "smtp"
)

// Message is one outbound transactional email.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
}

// Provider sends a message and returns the provider's message id.
type Provider interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
	Name() string
}

// Settings carries a resolved provider configuration row.
type Settings struct {
	Provider     string
	APIKey       string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// FromSettings constructs the configured provider implementation.
func FromSettings(s Settings) Provider {
	if s.Provider == ProviderSMTP {
		return NewSMTPProvider(s.SMTPHost, s.SMTPPort, s.SMTPUsername, s.SMTPPassword, s.FromEmail, s.FromName)
	}
	return NewBrevoProvider(s.APIKey, s.FromName, s.FromEmail)
}
