// Package audit consumes the domain events published by the other modules
// and writes them to the structured activity log. It is event-driven only,
// not HTTP-facing.
package audit

import (
	"context"

	"medportal_backend/internal/events"
	"medportal_backend/platform/logger"
)

// Module subscribes to all domain events and records them.
type Module struct {
	log *logger.Logger
}

// New creates the audit module.
func New(log *logger.Logger) *Module {
	return &Module{log: log}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	// Lead lifecycle events
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), m)

	// Engagement events
	bus.Subscribe(events.EmailDispatched{}.EventName(), m)
	bus.Subscribe(events.MeetingLinkCreated{}.EventName(), m)

	// Webhook reconciliation events
	bus.Subscribe(events.MeetingReconciled{}.EventName(), m)

	m.log.Info("audit module registered event handlers")
}

// Handle routes events to the appropriate log line.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		m.log.Info("audit: lead created",
			"lead_id", e.LeadID, "source", e.Source, "occurred_at", e.OccurredAt())
	case events.LeadStatusChanged:
		m.log.Info("audit: lead status changed",
			"lead_id", e.LeadID, "new_status_id", e.NewStatusID,
			"actor_id", e.ActorID, "occurred_at", e.OccurredAt())
	case events.EmailDispatched:
		m.log.Info("audit: email dispatched",
			"lead_id", e.LeadID, "admin_id", e.AdminID, "provider", e.Provider,
			"message_id", e.MessageID, "occurred_at", e.OccurredAt())
	case events.MeetingLinkCreated:
		m.log.Info("audit: scheduling link created",
			"lead_id", e.LeadID, "meeting_id", e.MeetingID,
			"admin_id", e.AdminID, "occurred_at", e.OccurredAt())
	case events.MeetingReconciled:
		m.log.Info("audit: meeting reconciled",
			"lead_id", e.LeadID, "meeting_id", e.MeetingID,
			"status", e.Status, "occurred_at", e.OccurredAt())
	default:
		m.log.Warn("audit: unhandled event", "event", event.EventName())
	}
	return nil
}
