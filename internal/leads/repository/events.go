package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead event types written by side-effecting actions.
const (
	EventEmailSent         = "email_sent"
	EventCalendlyScheduled = "calendly_scheduled"
	EventStatusChanged     = "status_changed"
)

// LeadEvent is an immutable structured record of a side-effecting action.
type LeadEvent struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	EventType string
	Payload   map[string]any
	ActorID   *uuid.UUID
	CreatedAt time.Time
}

// CreateLeadEventParams are the fields for a new event row.
type CreateLeadEventParams struct {
	LeadID    uuid.UUID
	EventType string
	Payload   map[string]any
	ActorID   *uuid.UUID
}

// CreateLeadEvent appends one event row.
func (r *Repository) CreateLeadEvent(ctx context.Context, params CreateLeadEventParams) (LeadEvent, error) {
	payloadJSON, err := json.Marshal(params.Payload)
	if err != nil {
		return LeadEvent{}, err
	}

	var event LeadEvent
	// payload is excluded from RETURNING: we already hold params.Payload as a
	// Go value, so re-scanning the stored JSONB would be a redundant roundtrip.
	err = r.pool.QueryRow(ctx, `
		INSERT INTO lead_events (lead_id, event_type, payload, actor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, event_type, actor_id, created_at
	`, params.LeadID, params.EventType, payloadJSON, params.ActorID).Scan(
		&event.ID,
		&event.LeadID,
		&event.EventType,
		&event.ActorID,
		&event.CreatedAt,
	)
	if err != nil {
		return LeadEvent{}, err
	}
	event.Payload = params.Payload
	return event, nil
}

// ListLeadEvents returns all events for a lead, newest first.
func (r *Repository) ListLeadEvents(ctx context.Context, leadID uuid.UUID) ([]LeadEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, event_type, payload, actor_id, created_at
		FROM lead_events
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]LeadEvent, 0)
	for rows.Next() {
		var event LeadEvent
		var rawPayload []byte
		if err := rows.Scan(
			&event.ID,
			&event.LeadID,
			&event.EventType,
			&rawPayload,
			&event.ActorID,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(rawPayload) > 0 {
			_ = json.Unmarshal(rawPayload, &event.Payload)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return events, nil
}
