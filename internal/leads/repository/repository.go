// Package repository provides data access for the leads bounded context.
// Queries are hand-written SQL executed against a pgx connection pool.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Repository is the shared data access layer for leads, transitions, notes,
// events, meetings and email logs.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is a prospective patient captured via an inbound form.
// Leads are never physically deleted.
type Lead struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Email        *string
	Source       string
	SourceDetail map[string]any
	StatusID     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateLeadParams are the fields required to capture a new lead.
type CreateLeadParams struct {
	Name         string
	Phone        string
	Email        *string
	Source       string
	SourceDetail map[string]any
	StatusID     int
}

// CreateLead inserts a new lead with its initial status.
func (r *Repository) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	detailJSON, err := json.Marshal(params.SourceDetail)
	if err != nil {
		return Lead{}, err
	}

	var lead Lead
	err = r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, phone, email, source, source_detail, status_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, phone, email, source, status_id, created_at, updated_at
	`, params.Name, params.Phone, params.Email, params.Source, detailJSON, params.StatusID).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Source,
		&lead.StatusID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	lead.SourceDetail = params.SourceDetail
	return lead, nil
}

// GetLeadByID fetches a single lead.
func (r *Repository) GetLeadByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	var lead Lead
	var rawDetail []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, source, source_detail, status_id, created_at, updated_at
		FROM leads
		WHERE id = $1
	`, id).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Source,
		&rawDetail,
		&lead.StatusID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	if len(rawDetail) > 0 {
		_ = json.Unmarshal(rawDetail, &lead.SourceDetail)
	}
	return lead, nil
}

// UpdateLeadStatus writes the lead's current status unconditionally and
// returns the previous status id. Last write wins under concurrent updates;
// the transition log is the audit source of truth.
func (r *Repository) UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, statusID int) (int, error) {
	var oldStatus int
	err := r.pool.QueryRow(ctx, `
		UPDATE leads l
		SET status_id = $2, updated_at = now()
		FROM (SELECT status_id FROM leads WHERE id = $1) prev
		WHERE l.id = $1
		RETURNING prev.status_id
	`, leadID, statusID).Scan(&oldStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return oldStatus, nil
}
