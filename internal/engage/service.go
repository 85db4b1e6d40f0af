package engage

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"medportal_backend/internal/email"
	"medportal_backend/internal/events"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/platform/apperr"
	"medportal_backend/platform/logger"

	"github.com/google/uuid"
)

// SettingsRepository resolves provider settings and templates.
type SettingsRepository interface {
	GetActiveEmailSettings(ctx context.Context, adminID uuid.UUID) (email.Settings, error)
	GetEmailTemplate(ctx context.Context, id uuid.UUID) (EmailTemplate, error)
	GetActiveCalendlySettings(ctx context.Context, adminID uuid.UUID) (CalendlySettings, error)
}

// LeadStore is the slice of the leads repository the dispatcher needs.
type LeadStore interface {
	GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	CreateLeadEvent(ctx context.Context, params repository.CreateLeadEventParams) (repository.LeadEvent, error)
	CreateMeeting(ctx context.Context, params repository.CreateMeetingParams) (repository.ScheduledMeeting, error)
	CreateEmailLog(ctx context.Context, params repository.CreateEmailLogParams) (repository.EmailLog, error)
}

// SchedulingProvider creates single-use booking links.
type SchedulingProvider interface {
	CreateSchedulingLink(ctx context.Context, token, eventTypeURI string) (string, error)
}

// ProviderFactory constructs an email provider from resolved settings.
// Injectable so tests can substitute a fake provider.
type ProviderFactory func(email.Settings) email.Provider

// Service dispatches outbound engagement per channel.
type Service struct {
	repo            SettingsRepository
	leadStore       LeadStore
	scheduler       SchedulingProvider
	providerFactory ProviderFactory
	bus             events.Bus
	log             *logger.Logger
	defaultMessage  string
}

// New creates a new engagement dispatcher.
func New(repo SettingsRepository, leadStore LeadStore, scheduler SchedulingProvider, factory ProviderFactory, bus events.Bus, log *logger.Logger, defaultWhatsAppMessage string) *Service {
	if factory == nil {
		factory = email.FromSettings
	}
	return &Service{
		repo:            repo,
		leadStore:       leadStore,
		scheduler:       scheduler,
		providerFactory: factory,
		bus:             bus,
		log:             log,
		defaultMessage:  defaultWhatsAppMessage,
	}
}

// SendEmailRequest is the email dispatch request.
type SendEmailRequest struct {
	LeadID        uuid.UUID         `json:"lead_id" validate:"required"`
	TemplateID    *uuid.UUID        `json:"template_id"`
	To            string            `json:"to" validate:"required,email"`
	CustomSubject string            `json:"custom_subject"`
	CustomBody    string            `json:"custom_body"`
	Variables     map[string]string `json:"variables"`
}

// SendEmailResponse is returned on successful dispatch.
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// SendEmail resolves the admin's provider, renders the message, sends it, and
// only after provider success persists the EmailLog row and the email_sent
// event. A provider failure short-circuits before any DB write.
func (s *Service) SendEmail(ctx context.Context, adminID uuid.UUID, req SendEmailRequest) (SendEmailResponse, error) {
	lead, err := s.leadStore.GetLeadByID(ctx, req.LeadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SendEmailResponse{}, apperr.NotFound("lead not found")
		}
		return SendEmailResponse{}, err
	}

	settings, err := s.repo.GetActiveEmailSettings(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SendEmailResponse{}, apperr.NotConfigured("no active email provider configured")
		}
		return SendEmailResponse{}, err
	}

	subject := strings.TrimSpace(req.CustomSubject)
	body := req.CustomBody
	if req.TemplateID != nil {
		tmpl, err := s.repo.GetEmailTemplate(ctx, *req.TemplateID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return SendEmailResponse{}, apperr.NotFound("email template not found")
			}
			return SendEmailResponse{}, err
		}
		if subject == "" {
			subject = tmpl.Subject
		}
		if body == "" {
			body = tmpl.Body
		}
	}
	if subject == "" || body == "" {
		return SendEmailResponse{}, apperr.Validation("subject and body are required when no template is given")
	}

	subject = SubstituteVariables(subject, req.Variables)
	body = SubstituteVariables(body, req.Variables)

	provider := s.providerFactory(settings)
	messageID, err := provider.Send(ctx, email.Message{
		ToEmail:  req.To,
		ToName:   lead.Name,
		Subject:  subject,
		HTMLBody: body,
	})
	if err != nil {
		s.log.ProviderError(provider.Name(), "send email", err)
		return SendEmailResponse{}, apperr.Provider("email provider rejected the message", err)
	}

	if _, err := s.leadStore.CreateEmailLog(ctx, repository.CreateEmailLogParams{
		LeadID:            lead.ID,
		AdminID:           adminID,
		Recipient:         req.To,
		Subject:           subject,
		Body:              body,
		Provider:          provider.Name(),
		ProviderMessageID: messageID,
		Status:            "sent",
	}); err != nil {
		return SendEmailResponse{}, err
	}

	if _, err := s.leadStore.CreateLeadEvent(ctx, repository.CreateLeadEventParams{
		LeadID:    lead.ID,
		EventType: repository.EventEmailSent,
		Payload: map[string]any{
			"recipient": req.To,
			"subject":   subject,
			"provider":  provider.Name(),
			"messageId": messageID,
		},
		ActorID: &adminID,
	}); err != nil {
		return SendEmailResponse{}, err
	}

	s.bus.Publish(ctx, events.EmailDispatched{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		AdminID:   adminID,
		Recipient: req.To,
		Provider:  provider.Name(),
		MessageID: messageID,
	})

	return SendEmailResponse{Success: true, MessageID: messageID}, nil
}

// variablePattern matches {{name}} placeholders with optional inner spacing.
var variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// SubstituteVariables replaces {{key}} placeholders with the mapped values.
// Placeholders with no mapping are left verbatim, never an error.
func SubstituteVariables(text string, variables map[string]string) string {
	if len(variables) == 0 {
		return text
	}
	return variablePattern.ReplaceAllStringFunc(text, func(match string) string {
		key := variablePattern.FindStringSubmatch(match)[1]
		if value, ok := variables[key]; ok {
			return value
		}
		return match
	})
}

// CreateSchedulingLinkRequest asks for a single-use booking link for a lead.
type CreateSchedulingLinkRequest struct {
	LeadID       uuid.UUID `json:"lead_id" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Name         string    `json:"name" validate:"required"`
	EventTypeURI string    `json:"event_type_uri"`
}

// CreateSchedulingLinkResponse is returned on success.
type CreateSchedulingLinkResponse struct {
	Success    bool   `json:"success"`
	BookingURL string `json:"booking_url"`
}

// CreateSchedulingLink resolves the admin's Calendly configuration, requests
// a single-use link, and on success persists the ScheduledMeeting and the
// calendly_scheduled event. Provider rejection persists nothing.
func (s *Service) CreateSchedulingLink(ctx context.Context, adminID uuid.UUID, req CreateSchedulingLinkRequest) (CreateSchedulingLinkResponse, error) {
	lead, err := s.leadStore.GetLeadByID(ctx, req.LeadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CreateSchedulingLinkResponse{}, apperr.NotFound("lead not found")
		}
		return CreateSchedulingLinkResponse{}, err
	}

	settings, err := s.repo.GetActiveCalendlySettings(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CreateSchedulingLinkResponse{}, apperr.NotConfigured("no active scheduling provider configured")
		}
		return CreateSchedulingLinkResponse{}, err
	}

	eventType := strings.TrimSpace(req.EventTypeURI)
	if eventType == "" {
		eventType = settings.DefaultEventType
	}
	if eventType == "" {
		return CreateSchedulingLinkResponse{}, apperr.NotConfigured("no scheduling event type configured")
	}

	bookingURL, err := s.scheduler.CreateSchedulingLink(ctx, settings.APIToken, eventType)
	if err != nil {
		s.log.ProviderError("calendly", "create scheduling link", err)
		return CreateSchedulingLinkResponse{}, apperr.Provider("scheduling provider rejected the request", err)
	}

	meeting, err := s.leadStore.CreateMeeting(ctx, repository.CreateMeetingParams{
		LeadID:       lead.ID,
		BookingURL:   bookingURL,
		InviteeEmail: req.Email,
		InviteeName:  req.Name,
	})
	if err != nil {
		return CreateSchedulingLinkResponse{}, err
	}

	if _, err := s.leadStore.CreateLeadEvent(ctx, repository.CreateLeadEventParams{
		LeadID:    lead.ID,
		EventType: repository.EventCalendlyScheduled,
		Payload: map[string]any{
			"bookingUrl":   bookingURL,
			"inviteeEmail": req.Email,
			"inviteeName":  req.Name,
		},
		ActorID: &adminID,
	}); err != nil {
		return CreateSchedulingLinkResponse{}, err
	}

	s.bus.Publish(ctx, events.MeetingLinkCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		MeetingID: meeting.ID,
		AdminID:   adminID,
	})

	return CreateSchedulingLinkResponse{Success: true, BookingURL: bookingURL}, nil
}
