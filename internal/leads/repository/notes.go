package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LeadNote is a free-text annotation on a lead.
type LeadNote struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateLeadNoteParams are the fields for a new note.
type CreateLeadNoteParams struct {
	LeadID   uuid.UUID
	AuthorID uuid.UUID
	Body     string
}

// CreateLeadNote inserts a new note.
func (r *Repository) CreateLeadNote(ctx context.Context, params CreateLeadNoteParams) (LeadNote, error) {
	var note LeadNote
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lead_notes (lead_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, lead_id, author_id, body, created_at, updated_at
	`, params.LeadID, params.AuthorID, params.Body).Scan(
		&note.ID,
		&note.LeadID,
		&note.AuthorID,
		&note.Body,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	return note, err
}

// UpdateLeadNote replaces a note's body. Any admin may edit any note.
func (r *Repository) UpdateLeadNote(ctx context.Context, noteID uuid.UUID, body string) (LeadNote, error) {
	var note LeadNote
	err := r.pool.QueryRow(ctx, `
		UPDATE lead_notes
		SET body = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, lead_id, author_id, body, created_at, updated_at
	`, noteID, body).Scan(
		&note.ID,
		&note.LeadID,
		&note.AuthorID,
		&note.Body,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeadNote{}, ErrNotFound
	}
	return note, err
}

// DeleteLeadNote removes a note.
func (r *Repository) DeleteLeadNote(ctx context.Context, noteID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lead_notes WHERE id = $1`, noteID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLeadNotes returns all notes for a lead, newest first.
func (r *Repository) ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]LeadNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, author_id, body, created_at, updated_at
		FROM lead_notes
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]LeadNote, 0)
	for rows.Next() {
		var note LeadNote
		if err := rows.Scan(
			&note.ID,
			&note.LeadID,
			&note.AuthorID,
			&note.Body,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notes, nil
}
