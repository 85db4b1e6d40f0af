// Package webhook reconciles external scheduling-provider callbacks with the
// locally persisted meeting state.
package webhook

import (
	"context"
	"errors"
	"time"

	"medportal_backend/internal/calendly"
	"medportal_backend/internal/events"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/platform/logger"

	"github.com/google/uuid"
)

// MeetingStore is the slice of the leads repository the reconciler needs.
type MeetingStore interface {
	FindMeetingByBookingRef(ctx context.Context, bookingRef string) (repository.ScheduledMeeting, error)
	FindPendingMeetingByInviteeEmail(ctx context.Context, email string) (repository.ScheduledMeeting, error)
	AttachBooking(ctx context.Context, meetingID uuid.UUID, bookingRef string, scheduledAt *time.Time) error
	UpdateMeetingStatus(ctx context.Context, meetingID uuid.UUID, status string) error
	CreateLeadEvent(ctx context.Context, params repository.CreateLeadEventParams) (repository.LeadEvent, error)
}

// Service applies webhook deliveries to meeting state. Every outcome that is
// not an internal failure acknowledges the delivery so the provider stops
// retrying; replays converge on the same end state.
type Service struct {
	store MeetingStore
	bus   events.Bus
	log   *logger.Logger
}

// New creates a new webhook reconciler.
func New(store MeetingStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// HandleEvent dispatches a delivery by its event name. Unknown event names
// are acknowledged without action.
func (s *Service) HandleEvent(ctx context.Context, payload calendly.WebhookPayload) error {
	switch payload.Event {
	case calendly.WebhookInviteeCreated:
		return s.handleInviteeCreated(ctx, payload)
	case calendly.WebhookInviteeCanceled:
		return s.handleInviteeCanceled(ctx, payload)
	default:
		s.log.Info("ignoring unknown webhook event", "event", payload.Event)
		return nil
	}
}

func (s *Service) handleInviteeCreated(ctx context.Context, payload calendly.WebhookPayload) error {
	ref := payload.Payload.URI
	if ref == "" {
		s.log.Warn("webhook delivery missing invitee reference", "event", payload.Event)
		return nil
	}

	meeting, err := s.store.FindMeetingByBookingRef(ctx, ref)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	replay := err == nil

	if !replay {
		meeting, err = s.store.FindPendingMeetingByInviteeEmail(ctx, payload.Payload.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Booked outside our flow or for an unknown invitee. Ack.
				s.log.Info("no matching meeting for webhook delivery",
					"invitee_email", payload.Payload.Email, "booking_ref", ref)
				return nil
			}
			return err
		}
	}

	scheduledAt := payload.Payload.ScheduledEvent.StartTime
	if err := s.store.AttachBooking(ctx, meeting.ID, ref, scheduledAt); err != nil {
		return err
	}

	if !replay {
		if _, err := s.store.CreateLeadEvent(ctx, repository.CreateLeadEventParams{
			LeadID:    meeting.LeadID,
			EventType: repository.EventCalendlyScheduled,
			Payload: map[string]any{
				"bookingRef":   ref,
				"inviteeEmail": payload.Payload.Email,
				"status":       repository.MeetingStatusScheduled,
			},
		}); err != nil {
			return err
		}
	}

	s.bus.Publish(ctx, events.MeetingReconciled{
		BaseEvent: events.NewBaseEvent(),
		MeetingID: meeting.ID,
		LeadID:    meeting.LeadID,
		Status:    repository.MeetingStatusScheduled,
	})
	return nil
}

func (s *Service) handleInviteeCanceled(ctx context.Context, payload calendly.WebhookPayload) error {
	ref := payload.Payload.URI
	if ref == "" {
		s.log.Warn("webhook delivery missing invitee reference", "event", payload.Event)
		return nil
	}

	meeting, err := s.store.FindMeetingByBookingRef(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info("cancellation for unknown booking reference", "booking_ref", ref)
			return nil
		}
		return err
	}

	if err := s.store.UpdateMeetingStatus(ctx, meeting.ID, repository.MeetingStatusCancelled); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.MeetingReconciled{
		BaseEvent: events.NewBaseEvent(),
		MeetingID: meeting.ID,
		LeadID:    meeting.LeadID,
		Status:    repository.MeetingStatusCancelled,
	})
	return nil
}
