package engage

import (
	"context"
	"errors"
	"testing"

	"medportal_backend/internal/email"
	"medportal_backend/internal/events"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/platform/apperr"
	"medportal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeSettingsRepo struct {
	emailSettings    *email.Settings
	template         *EmailTemplate
	calendlySettings *CalendlySettings
}

func (f *fakeSettingsRepo) GetActiveEmailSettings(_ context.Context, _ uuid.UUID) (email.Settings, error) {
	if f.emailSettings == nil {
		return email.Settings{}, ErrNotFound
	}
	return *f.emailSettings, nil
}

func (f *fakeSettingsRepo) GetEmailTemplate(_ context.Context, id uuid.UUID) (EmailTemplate, error) {
	if f.template == nil || f.template.ID != id {
		return EmailTemplate{}, ErrNotFound
	}
	return *f.template, nil
}

func (f *fakeSettingsRepo) GetActiveCalendlySettings(_ context.Context, _ uuid.UUID) (CalendlySettings, error) {
	if f.calendlySettings == nil {
		return CalendlySettings{}, ErrNotFound
	}
	return *f.calendlySettings, nil
}

type fakeLeadStore struct {
	leads     map[uuid.UUID]repository.Lead
	emailLogs []repository.CreateEmailLogParams
	events    []repository.CreateLeadEventParams
	meetings  []repository.CreateMeetingParams
}

func (f *fakeLeadStore) GetLeadByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeLeadStore) CreateLeadEvent(_ context.Context, params repository.CreateLeadEventParams) (repository.LeadEvent, error) {
	f.events = append(f.events, params)
	return repository.LeadEvent{ID: uuid.New(), LeadID: params.LeadID, EventType: params.EventType}, nil
}

func (f *fakeLeadStore) CreateMeeting(_ context.Context, params repository.CreateMeetingParams) (repository.ScheduledMeeting, error) {
	f.meetings = append(f.meetings, params)
	return repository.ScheduledMeeting{ID: uuid.New(), LeadID: params.LeadID, BookingURL: params.BookingURL}, nil
}

func (f *fakeLeadStore) CreateEmailLog(_ context.Context, params repository.CreateEmailLogParams) (repository.EmailLog, error) {
	f.emailLogs = append(f.emailLogs, params)
	return repository.EmailLog{ID: uuid.New(), LeadID: params.LeadID}, nil
}

type fakeEmailProvider struct {
	messageID string
	err       error
	sent      []email.Message
}

func (f *fakeEmailProvider) Send(_ context.Context, msg email.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return f.messageID, nil
}

func (f *fakeEmailProvider) Name() string { return "fake" }

type fakeScheduler struct {
	bookingURL string
	err        error
	calls      int
}

func (f *fakeScheduler) CreateSchedulingLink(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.bookingURL, nil
}

type noopBus struct{}

func (noopBus) Publish(_ context.Context, _ events.Event)          {}
func (noopBus) PublishSync(_ context.Context, _ events.Event) error { return nil }
func (noopBus) Subscribe(_ string, _ events.Handler)                {}

func newTestService(repo *fakeSettingsRepo, store *fakeLeadStore, scheduler *fakeScheduler, provider *fakeEmailProvider) *Service {
	factory := func(email.Settings) email.Provider { return provider }
	return New(repo, store, scheduler, factory, noopBus{}, logger.New("test"), "Hello from the clinic")
}

func seedLead(store *fakeLeadStore) repository.Lead {
	lead := repository.Lead{ID: uuid.New(), Name: "Omar Hassan", Phone: "+201001234567"}
	store.leads = map[uuid.UUID]repository.Lead{lead.ID: lead}
	return lead
}

func TestSendEmailNoProviderConfigured(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	provider := &fakeEmailProvider{messageID: "m-1"}
	svc := newTestService(&fakeSettingsRepo{}, store, &fakeScheduler{}, provider)

	_, err := svc.SendEmail(context.Background(), uuid.New(), SendEmailRequest{
		LeadID:        lead.ID,
		To:            "omar@example.com",
		CustomSubject: "Hi",
		CustomBody:    "<p>Hi</p>",
	})
	if apperr.GetKind(err) != apperr.KindNotConfigured {
		t.Fatalf("expected KindNotConfigured, got %v", err)
	}
	if len(store.emailLogs) != 0 {
		t.Fatalf("expected no email log rows, got %d", len(store.emailLogs))
	}
	if len(provider.sent) != 0 {
		t.Fatalf("provider should not have been called")
	}
}

func TestSendEmailProviderFailurePersistsNothing(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	repo := &fakeSettingsRepo{emailSettings: &email.Settings{Provider: email.ProviderBrevo}}
	provider := &fakeEmailProvider{err: errors.New("smtp 550")}
	svc := newTestService(repo, store, &fakeScheduler{}, provider)

	_, err := svc.SendEmail(context.Background(), uuid.New(), SendEmailRequest{
		LeadID:        lead.ID,
		To:            "omar@example.com",
		CustomSubject: "Hi",
		CustomBody:    "<p>Hi</p>",
	})
	if apperr.GetKind(err) != apperr.KindProvider {
		t.Fatalf("expected KindProvider, got %v", err)
	}
	if len(store.emailLogs) != 0 || len(store.events) != 0 {
		t.Fatalf("provider failure must not persist anything: logs=%d events=%d", len(store.emailLogs), len(store.events))
	}
}

func TestSendEmailTemplateWithVariables(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	tmplID := uuid.New()
	repo := &fakeSettingsRepo{
		emailSettings: &email.Settings{Provider: email.ProviderBrevo},
		template: &EmailTemplate{
			ID:      tmplID,
			Subject: "Welcome {{name}}",
			Body:    "Dear {{name}}, your procedure is {{procedure}}. {{missing}} stays.",
		},
	}
	provider := &fakeEmailProvider{messageID: "msg-42"}
	svc := newTestService(repo, store, &fakeScheduler{}, provider)

	resp, err := svc.SendEmail(context.Background(), uuid.New(), SendEmailRequest{
		LeadID:     lead.ID,
		TemplateID: &tmplID,
		To:         "omar@example.com",
		Variables:  map[string]string{"name": "Omar", "procedure": "LASIK"},
	})
	if err != nil {
		t.Fatalf("SendEmail: %v", err)
	}
	if !resp.Success || resp.MessageID != "msg-42" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(provider.sent) != 1 {
		t.Fatalf("expected one provider call, got %d", len(provider.sent))
	}
	msg := provider.sent[0]
	if msg.Subject != "Welcome Omar" {
		t.Fatalf("subject substitution: %q", msg.Subject)
	}
	want := "Dear Omar, your procedure is LASIK. {{missing}} stays."
	if msg.HTMLBody != want {
		t.Fatalf("body substitution: got %q want %q", msg.HTMLBody, want)
	}
	if len(store.emailLogs) != 1 {
		t.Fatalf("expected one email log, got %d", len(store.emailLogs))
	}
	if store.emailLogs[0].Status != "sent" || store.emailLogs[0].ProviderMessageID != "msg-42" {
		t.Fatalf("unexpected log: %+v", store.emailLogs[0])
	}
	if len(store.events) != 1 || store.events[0].EventType != repository.EventEmailSent {
		t.Fatalf("expected one email_sent event, got %+v", store.events)
	}
}

func TestSendEmailMissingSubjectAndBody(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	repo := &fakeSettingsRepo{emailSettings: &email.Settings{Provider: email.ProviderSMTP}}
	svc := newTestService(repo, store, &fakeScheduler{}, &fakeEmailProvider{})

	_, err := svc.SendEmail(context.Background(), uuid.New(), SendEmailRequest{
		LeadID: lead.ID,
		To:     "omar@example.com",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}

func TestSubstituteVariables(t *testing.T) {
	got := SubstituteVariables("Hi {{ name }}, {{unknown}} and {{name}} again", map[string]string{"name": "Laila"})
	want := "Hi Laila, {{unknown}} and Laila again"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if out := SubstituteVariables("no vars {{x}}", nil); out != "no vars {{x}}" {
		t.Fatalf("nil map must leave text verbatim, got %q", out)
	}
}

func TestCreateSchedulingLinkNotConfigured(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	scheduler := &fakeScheduler{bookingURL: "https://calendly.com/d/abc"}
	svc := newTestService(&fakeSettingsRepo{}, store, scheduler, &fakeEmailProvider{})

	_, err := svc.CreateSchedulingLink(context.Background(), uuid.New(), CreateSchedulingLinkRequest{
		LeadID: lead.ID,
		Email:  "omar@example.com",
		Name:   "Omar Hassan",
	})
	if apperr.GetKind(err) != apperr.KindNotConfigured {
		t.Fatalf("expected KindNotConfigured, got %v", err)
	}
	if scheduler.calls != 0 {
		t.Fatalf("scheduler should not have been called")
	}
	if len(store.meetings) != 0 {
		t.Fatalf("expected no meetings persisted")
	}
}

func TestCreateSchedulingLinkDefaultEventType(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	repo := &fakeSettingsRepo{calendlySettings: &CalendlySettings{
		APIToken:         "tok",
		DefaultEventType: "https://api.calendly.com/event_types/e1",
	}}
	scheduler := &fakeScheduler{bookingURL: "https://calendly.com/d/abc"}
	svc := newTestService(repo, store, scheduler, &fakeEmailProvider{})

	resp, err := svc.CreateSchedulingLink(context.Background(), uuid.New(), CreateSchedulingLinkRequest{
		LeadID: lead.ID,
		Email:  "omar@example.com",
		Name:   "Omar Hassan",
	})
	if err != nil {
		t.Fatalf("CreateSchedulingLink: %v", err)
	}
	if resp.BookingURL != "https://calendly.com/d/abc" {
		t.Fatalf("unexpected booking url %q", resp.BookingURL)
	}
	if len(store.meetings) != 1 || store.meetings[0].InviteeEmail != "omar@example.com" {
		t.Fatalf("expected one meeting with invitee email, got %+v", store.meetings)
	}
	if len(store.events) != 1 || store.events[0].EventType != repository.EventCalendlyScheduled {
		t.Fatalf("expected calendly_scheduled event, got %+v", store.events)
	}
}

func TestCreateSchedulingLinkProviderFailure(t *testing.T) {
	store := &fakeLeadStore{}
	lead := seedLead(store)
	repo := &fakeSettingsRepo{calendlySettings: &CalendlySettings{
		APIToken:         "tok",
		DefaultEventType: "https://api.calendly.com/event_types/e1",
	}}
	scheduler := &fakeScheduler{err: errors.New("401 unauthorized")}
	svc := newTestService(repo, store, scheduler, &fakeEmailProvider{})

	_, err := svc.CreateSchedulingLink(context.Background(), uuid.New(), CreateSchedulingLinkRequest{
		LeadID: lead.ID,
		Email:  "omar@example.com",
		Name:   "Omar Hassan",
	})
	if apperr.GetKind(err) != apperr.KindProvider {
		t.Fatalf("expected KindProvider, got %v", err)
	}
	if len(store.meetings) != 0 || len(store.events) != 0 {
		t.Fatalf("provider failure must not persist anything")
	}
}
