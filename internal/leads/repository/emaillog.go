package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailLog records one outbound transactional email.
type EmailLog struct {
	ID                uuid.UUID
	LeadID            uuid.UUID
	AdminID           uuid.UUID
	Recipient         string
	Subject           string
	Body              string
	Provider          string
	ProviderMessageID string
	Status            string
	CreatedAt         time.Time
}

// CreateEmailLogParams are the fields for a new email log row.
type CreateEmailLogParams struct {
	LeadID            uuid.UUID
	AdminID           uuid.UUID
	Recipient         string
	Subject           string
	Body              string
	Provider          string
	ProviderMessageID string
	Status            string
}

// CreateEmailLog inserts an email log row. Called only after the provider
// accepted the message.
func (r *Repository) CreateEmailLog(ctx context.Context, params CreateEmailLogParams) (EmailLog, error) {
	var log EmailLog
	err := r.pool.QueryRow(ctx, `
		INSERT INTO email_logs (lead_id, admin_id, recipient, subject, body, provider, provider_message_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, lead_id, admin_id, recipient, subject, body, provider, provider_message_id, status, created_at
	`, params.LeadID, params.AdminID, params.Recipient, params.Subject, params.Body, params.Provider, params.ProviderMessageID, params.Status).Scan(
		&log.ID,
		&log.LeadID,
		&log.AdminID,
		&log.Recipient,
		&log.Subject,
		&log.Body,
		&log.Provider,
		&log.ProviderMessageID,
		&log.Status,
		&log.CreatedAt,
	)
	return log, err
}
