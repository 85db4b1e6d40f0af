// Package notes handles lead note operations.
// This is a vertically sliced feature package containing service logic
// for creating, editing, deleting and listing notes on leads.
package notes

import (
	"context"
	"errors"
	"strings"

	"medportal_backend/internal/leads/repository"
	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the notes service.
// This is a consumer-driven interface - only what notes needs.
type Repository interface {
	GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	CreateLeadNote(ctx context.Context, params repository.CreateLeadNoteParams) (repository.LeadNote, error)
	UpdateLeadNote(ctx context.Context, noteID uuid.UUID, body string) (repository.LeadNote, error)
	DeleteLeadNote(ctx context.Context, noteID uuid.UUID) error
	ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]repository.LeadNote, error)
}

// Service handles lead note operations.
type Service struct {
	repo Repository
}

// New creates a new notes service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add adds a new note to a lead.
func (s *Service) Add(ctx context.Context, leadID uuid.UUID, authorID uuid.UUID, req transport.CreateLeadNoteRequest) (transport.LeadNoteResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" || len(body) > 2000 {
		return transport.LeadNoteResponse{}, apperr.Validation("note body must be between 1 and 2000 characters")
	}

	// Verify lead exists
	if _, err := s.repo.GetLeadByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadNoteResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadNoteResponse{}, err
	}

	note, err := s.repo.CreateLeadNote(ctx, repository.CreateLeadNoteParams{
		LeadID:   leadID,
		AuthorID: authorID,
		Body:     body,
	})
	if err != nil {
		return transport.LeadNoteResponse{}, err
	}

	return toLeadNoteResponse(note), nil
}

// Edit replaces the note body. Any authenticated admin may edit any note,
// not just the original author.
func (s *Service) Edit(ctx context.Context, noteID uuid.UUID, req transport.UpdateLeadNoteRequest) (transport.LeadNoteResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" || len(body) > 2000 {
		return transport.LeadNoteResponse{}, apperr.Validation("note body must be between 1 and 2000 characters")
	}

	note, err := s.repo.UpdateLeadNote(ctx, noteID, body)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadNoteResponse{}, apperr.NotFound("note not found")
		}
		return transport.LeadNoteResponse{}, err
	}

	return toLeadNoteResponse(note), nil
}

// Delete removes a note. Any authenticated admin may delete any note.
func (s *Service) Delete(ctx context.Context, noteID uuid.UUID) error {
	if err := s.repo.DeleteLeadNote(ctx, noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("note not found")
		}
		return err
	}
	return nil
}

// List retrieves all notes for a lead, newest first.
func (s *Service) List(ctx context.Context, leadID uuid.UUID) (transport.LeadNotesResponse, error) {
	if _, err := s.repo.GetLeadByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadNotesResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadNotesResponse{}, err
	}

	notesList, err := s.repo.ListLeadNotes(ctx, leadID)
	if err != nil {
		return transport.LeadNotesResponse{}, err
	}

	items := make([]transport.LeadNoteResponse, len(notesList))
	for i, note := range notesList {
		items[i] = toLeadNoteResponse(note)
	}

	return transport.LeadNotesResponse{Items: items}, nil
}

func toLeadNoteResponse(note repository.LeadNote) transport.LeadNoteResponse {
	return transport.LeadNoteResponse{
		ID:        note.ID,
		LeadID:    note.LeadID,
		AuthorID:  note.AuthorID,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
