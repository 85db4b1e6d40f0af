package engage

import (
	"context"
	"errors"
	"time"

	"medportal_backend/internal/email"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Repository provides data access for provider settings and email templates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new engage repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetActiveEmailSettings resolves the acting admin's active email provider
// configuration. Exactly one provider row is active per admin.
func (r *Repository) GetActiveEmailSettings(ctx context.Context, adminID uuid.UUID) (email.Settings, error) {
	var s email.Settings
	var apiKey, smtpHost, smtpUsername, smtpPassword *string
	var smtpPort *int
	err := r.pool.QueryRow(ctx, `
		SELECT provider, api_key, smtp_host, smtp_port, smtp_username, smtp_password, from_name, from_email
		FROM email_provider_settings
		WHERE admin_id = $1 AND is_active
		ORDER BY updated_at DESC
		LIMIT 1
	`, adminID).Scan(&s.Provider, &apiKey, &smtpHost, &smtpPort, &smtpUsername, &smtpPassword, &s.FromName, &s.FromEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return email.Settings{}, ErrNotFound
	}
	if err != nil {
		return email.Settings{}, err
	}

	if apiKey != nil {
		s.APIKey = *apiKey
	}
	if smtpHost != nil {
		s.SMTPHost = *smtpHost
	}
	if smtpPort != nil {
		s.SMTPPort = *smtpPort
	}
	if smtpUsername != nil {
		s.SMTPUsername = *smtpUsername
	}
	if smtpPassword != nil {
		s.SMTPPassword = *smtpPassword
	}
	return s, nil
}

// EmailTemplate is a stored subject/body pair with {{variable}} placeholders.
type EmailTemplate struct {
	ID        uuid.UUID
	Name      string
	Subject   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetEmailTemplate loads a template by id.
func (r *Repository) GetEmailTemplate(ctx context.Context, id uuid.UUID) (EmailTemplate, error) {
	var t EmailTemplate
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, subject, body, created_at, updated_at
		FROM email_templates
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmailTemplate{}, ErrNotFound
	}
	return t, err
}

// CalendlySettings is the acting admin's scheduling-provider configuration.
type CalendlySettings struct {
	AdminID          uuid.UUID
	APIToken         string
	DefaultEventType string
	IsActive         bool
}

// GetActiveCalendlySettings resolves the admin's active Calendly configuration.
func (r *Repository) GetActiveCalendlySettings(ctx context.Context, adminID uuid.UUID) (CalendlySettings, error) {
	var s CalendlySettings
	err := r.pool.QueryRow(ctx, `
		SELECT admin_id, api_token, default_event_type, is_active
		FROM calendly_settings
		WHERE admin_id = $1 AND is_active
		LIMIT 1
	`, adminID).Scan(&s.AdminID, &s.APIToken, &s.DefaultEventType, &s.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return CalendlySettings{}, ErrNotFound
	}
	return s, err
}
