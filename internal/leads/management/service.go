// Package management handles lead capture and retrieval.
package management

import (
	"context"
	"errors"
	"strings"

	"medportal_backend/internal/events"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/apperr"
	"medportal_backend/platform/phone"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the management service.
type Repository interface {
	CreateLead(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	ListStatuses(ctx context.Context) ([]repository.LeadStatus, error)
	CreateTransition(ctx context.Context, params repository.CreateTransitionParams) (repository.StatusTransition, error)
}

// Service handles lead capture.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new management service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create captures a new lead in the first catalog status and appends the
// initial transition (old status null, system actor).
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.LeadResponse{}, apperr.Validation("name is required")
	}

	normalizedPhone := phone.NormalizeE164(req.Phone)
	if normalizedPhone == "" {
		return transport.LeadResponse{}, apperr.Validation("phone is required")
	}

	statuses, err := s.repo.ListStatuses(ctx)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	if len(statuses) == 0 {
		return transport.LeadResponse{}, apperr.Internal("status catalog is empty")
	}
	initialStatus := statuses[0]

	var email *string
	if trimmed := strings.TrimSpace(req.Email); trimmed != "" {
		email = &trimmed
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "website"
	}

	lead, err := s.repo.CreateLead(ctx, repository.CreateLeadParams{
		Name:         name,
		Phone:        normalizedPhone,
		Email:        email,
		Source:       source,
		SourceDetail: req.SourceDetail,
		StatusID:     initialStatus.ID,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	// Initial transition: old status null, system-initiated.
	if _, err := s.repo.CreateTransition(ctx, repository.CreateTransitionParams{
		LeadID:      lead.ID,
		NewStatusID: initialStatus.ID,
	}); err != nil {
		return transport.LeadResponse{}, err
	}

	emailValue := ""
	if lead.Email != nil {
		emailValue = *lead.Email
	}
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Source:    lead.Source,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     emailValue,
	})

	return toLeadResponse(lead, initialStatus.Name), nil
}

// Get fetches a lead by id.
func (s *Service) Get(ctx context.Context, leadID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead, ""), nil
}

func toLeadResponse(lead repository.Lead, statusName string) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:         lead.ID,
		Name:       lead.Name,
		Phone:      lead.Phone,
		Source:     lead.Source,
		StatusID:   lead.StatusID,
		StatusName: statusName,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
	if lead.Email != nil {
		resp.Email = *lead.Email
	}
	return resp
}
