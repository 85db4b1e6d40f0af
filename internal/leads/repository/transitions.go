package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatusTransition is an immutable record of a lead status change.
// Rows are append-only; the history persists independent of lead mutability.
type StatusTransition struct {
	ID            uuid.UUID
	LeadID        uuid.UUID
	OldStatusID   *int
	OldStatusName *string
	NewStatusID   int
	NewStatusName string
	ActorID       *uuid.UUID
	CreatedAt     time.Time
}

// CreateTransitionParams describes a single audited status change.
// OldStatusID is nil for the first transition; ActorID is nil when
// system-initiated.
type CreateTransitionParams struct {
	LeadID      uuid.UUID
	OldStatusID *int
	NewStatusID int
	ActorID     *uuid.UUID
}

// CreateTransition appends one transition row.
func (r *Repository) CreateTransition(ctx context.Context, params CreateTransitionParams) (StatusTransition, error) {
	var tr StatusTransition
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO lead_status_transitions (lead_id, old_status_id, new_status_id, actor_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, lead_id, old_status_id, new_status_id, actor_id, created_at
		)
		SELECT inserted.id, inserted.lead_id, inserted.old_status_id, old_s.name,
		       inserted.new_status_id, new_s.name, inserted.actor_id, inserted.created_at
		FROM inserted
		JOIN lead_statuses new_s ON new_s.id = inserted.new_status_id
		LEFT JOIN lead_statuses old_s ON old_s.id = inserted.old_status_id
	`, params.LeadID, params.OldStatusID, params.NewStatusID, params.ActorID).Scan(
		&tr.ID,
		&tr.LeadID,
		&tr.OldStatusID,
		&tr.OldStatusName,
		&tr.NewStatusID,
		&tr.NewStatusName,
		&tr.ActorID,
		&tr.CreatedAt,
	)
	return tr, err
}

// ListTransitions returns a lead's status history, newest first.
func (r *Repository) ListTransitions(ctx context.Context, leadID uuid.UUID) ([]StatusTransition, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.lead_id, t.old_status_id, old_s.name,
		       t.new_status_id, new_s.name, t.actor_id, t.created_at
		FROM lead_status_transitions t
		JOIN lead_statuses new_s ON new_s.id = t.new_status_id
		LEFT JOIN lead_statuses old_s ON old_s.id = t.old_status_id
		WHERE t.lead_id = $1
		ORDER BY t.created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transitions := make([]StatusTransition, 0)
	for rows.Next() {
		var tr StatusTransition
		if err := rows.Scan(
			&tr.ID,
			&tr.LeadID,
			&tr.OldStatusID,
			&tr.OldStatusName,
			&tr.NewStatusID,
			&tr.NewStatusName,
			&tr.ActorID,
			&tr.CreatedAt,
		); err != nil {
			return nil, err
		}
		transitions = append(transitions, tr)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return transitions, nil
}
