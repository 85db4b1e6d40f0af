// Package status implements the lead status store: the current status of a
// lead plus an append-only history of transitions.
package status

import (
	"context"
	"errors"

	"medportal_backend/internal/events"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository is the data access interface needed by the status service.
// This is a consumer-driven interface - only what status needs.
type Repository interface {
	GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	StatusExists(ctx context.Context, statusID int) (bool, error)
	UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, statusID int) (int, error)
	CreateTransition(ctx context.Context, params repository.CreateTransitionParams) (repository.StatusTransition, error)
	ListTransitions(ctx context.Context, leadID uuid.UUID) ([]repository.StatusTransition, error)
}

// Service handles lead status progression.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new status service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// SetStatus moves a lead to statusID. The current status is written
// unconditionally; a transition row is appended only when the status actually
// changed, so repeating the same status is an idempotent no-op on the history.
// actor is nil for system-initiated changes.
//
// Concurrent updates to the same lead are not serialized here: last write
// wins, and the transition log remains the audit source of truth.
func (s *Service) SetStatus(ctx context.Context, leadID uuid.UUID, statusID int, actor *uuid.UUID) error {
	exists, err := s.repo.StatusExists(ctx, statusID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Validation("invalid status: not in the status catalog")
	}

	oldStatus, err := s.repo.UpdateLeadStatus(ctx, leadID, statusID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return err
	}

	if oldStatus == statusID {
		return nil
	}

	old := oldStatus
	if _, err := s.repo.CreateTransition(ctx, repository.CreateTransitionParams{
		LeadID:      leadID,
		OldStatusID: &old,
		NewStatusID: statusID,
		ActorID:     actor,
	}); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		OldStatusID: &old,
		NewStatusID: statusID,
		ActorID:     actor,
	})

	return nil
}

// History returns a lead's status transitions, newest first.
func (s *Service) History(ctx context.Context, leadID uuid.UUID) (transport.StatusHistoryResponse, error) {
	if _, err := s.repo.GetLeadByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.StatusHistoryResponse{}, apperr.NotFound("lead not found")
		}
		return transport.StatusHistoryResponse{}, err
	}

	transitions, err := s.repo.ListTransitions(ctx, leadID)
	if err != nil {
		return transport.StatusHistoryResponse{}, err
	}

	items := make([]transport.StatusTransitionResponse, len(transitions))
	for i, tr := range transitions {
		items[i] = toTransitionResponse(tr)
	}
	return transport.StatusHistoryResponse{Items: items}, nil
}

func toTransitionResponse(tr repository.StatusTransition) transport.StatusTransitionResponse {
	return transport.StatusTransitionResponse{
		ID:            tr.ID,
		LeadID:        tr.LeadID,
		OldStatusID:   tr.OldStatusID,
		OldStatusName: tr.OldStatusName,
		NewStatusID:   tr.NewStatusID,
		NewStatusName: tr.NewStatusName,
		ActorID:       tr.ActorID,
		CreatedAt:     tr.CreatedAt,
	}
}
