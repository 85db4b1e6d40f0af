package crm

import (
	"context"
	"strings"

	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/apperr"
	"medportal_backend/platform/logger"
)

// Lead sources accepted by the sync intake endpoints.
const (
	SourceGeneral  = "general_inquiry"
	SourceHospital = "hospital_inquiry"
	SourcePrivate  = "private_consultation"
)

// ContactAPI is the slice of the CRM client the service needs.
type ContactAPI interface {
	CreateContact(ctx context.Context, properties map[string]string) (string, error)
	CreateDeal(ctx context.Context, properties map[string]string, contactID string) (string, error)
}

// LeadCreator captures the lead locally before the CRM push.
type LeadCreator interface {
	Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error)
}

// Service captures a lead locally and mirrors it into the CRM.
type Service struct {
	api     ContactAPI
	leads   LeadCreator
	enabled bool
	log     *logger.Logger
}

// New creates a new CRM sync service. When disabled the local capture still
// happens and the CRM push is skipped.
func New(api ContactAPI, leads LeadCreator, enabled bool, log *logger.Logger) *Service {
	return &Service{api: api, leads: leads, enabled: enabled, log: log}
}

// SyncRequest is an inbound lead form submission destined for the CRM.
type SyncRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"required,min=5,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"omitempty,max=2000"`
}

// SyncResponse reports the capture outcome.
type SyncResponse struct {
	Success   bool   `json:"success"`
	LeadID    string `json:"leadId"`
	ContactID string `json:"contactId,omitempty"`
	DealID    string `json:"dealId,omitempty"`
}

// Sync captures the lead locally, then creates the CRM contact and an
// associated deal. The two CRM calls are sequential with no compensation: a
// deal failure after a successful contact leaves the contact orphaned in the
// CRM.
func (s *Service) Sync(ctx context.Context, source string, req SyncRequest) (SyncResponse, error) {
	lead, err := s.leads.Create(ctx, transport.CreateLeadRequest{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Source: source,
		SourceDetail: map[string]any{
			"message": req.Message,
		},
	})
	if err != nil {
		return SyncResponse{}, err
	}

	resp := SyncResponse{Success: true, LeadID: lead.ID.String()}

	if !s.enabled {
		s.log.Info("crm sync disabled, captured lead locally only", "lead_id", lead.ID, "source", source)
		return resp, nil
	}

	contactID, err := s.api.CreateContact(ctx, contactProperties(req))
	if err != nil {
		s.log.ProviderError("crm", "create contact", err)
		return SyncResponse{}, apperr.Provider("crm contact creation failed", err)
	}

	dealID, err := s.api.CreateDeal(ctx, dealProperties(source, req), contactID)
	if err != nil {
		// No compensation: the contact stays behind in the CRM.
		s.log.ProviderError("crm", "create deal", err)
		return SyncResponse{}, apperr.Provider("crm deal creation failed", err)
	}

	resp.ContactID = contactID
	resp.DealID = dealID
	return resp, nil
}

func contactProperties(req SyncRequest) map[string]string {
	first, last := splitName(req.Name)
	props := map[string]string{
		"firstname": first,
		"phone":     req.Phone,
	}
	if last != "" {
		props["lastname"] = last
	}
	if req.Email != "" {
		props["email"] = req.Email
	}
	return props
}

func dealProperties(source string, req SyncRequest) map[string]string {
	props := map[string]string{
		"dealname": req.Name + " - " + source,
	}
	if req.Message != "" {
		props["description"] = req.Message
	}
	return props
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
