// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"medportal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is captured.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Source string    `json:"source"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Email  string    `json:"email,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when a status transition is recorded.
// Idempotent same-status writes do not publish.
type LeadStatusChanged struct {
	BaseEvent
	LeadID      uuid.UUID  `json:"leadId"`
	OldStatusID *int       `json:"oldStatusId,omitempty"`
	NewStatusID int        `json:"newStatusId"`
	ActorID     *uuid.UUID `json:"actorId,omitempty"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// =============================================================================
// Engagement Domain Events
// =============================================================================

// EmailDispatched is published after a transactional email was accepted by
// the provider and logged.
type EmailDispatched struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	AdminID   uuid.UUID `json:"adminId"`
	Recipient string    `json:"recipient"`
	Provider  string    `json:"provider"`
	MessageID string    `json:"messageId"`
}

func (e EmailDispatched) EventName() string { return "engage.email.dispatched" }

// MeetingLinkCreated is published when a scheduling link was generated.
type MeetingLinkCreated struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	MeetingID uuid.UUID `json:"meetingId"`
	AdminID   uuid.UUID `json:"adminId"`
}

func (e MeetingLinkCreated) EventName() string { return "engage.meeting.link_created" }

// MeetingReconciled is published when a provider webhook confirmed or
// cancelled a scheduled meeting.
type MeetingReconciled struct {
	BaseEvent
	MeetingID uuid.UUID `json:"meetingId"`
	LeadID    uuid.UUID `json:"leadId"`
	Status    string    `json:"status"`
}

func (e MeetingReconciled) EventName() string { return "webhook.meeting.reconciled" }
