// Package transport defines the request/response DTOs for the leads API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateLeadRequest captures an inbound lead form submission.
type CreateLeadRequest struct {
	Name         string         `json:"name" validate:"required,min=1,max=200"`
	Phone        string         `json:"phone" validate:"required,min=5,max=30"`
	Email        string         `json:"email" validate:"omitempty,email"`
	Source       string         `json:"source" validate:"omitempty,max=100"`
	SourceDetail map[string]any `json:"sourceDetail"`
}

// LeadResponse is the API shape of a lead.
type LeadResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Source     string    `json:"source,omitempty"`
	StatusID   int       `json:"statusId"`
	StatusName string    `json:"statusName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpdateStatusRequest moves a lead to a new catalog status.
type UpdateStatusRequest struct {
	StatusID int `json:"statusId" validate:"required,gt=0"`
}

// StatusTransitionResponse is one audited status change.
type StatusTransitionResponse struct {
	ID            uuid.UUID  `json:"id"`
	LeadID        uuid.UUID  `json:"leadId"`
	OldStatusID   *int       `json:"oldStatusId,omitempty"`
	OldStatusName *string    `json:"oldStatusName,omitempty"`
	NewStatusID   int        `json:"newStatusId"`
	NewStatusName string     `json:"newStatusName"`
	ActorID       *uuid.UUID `json:"actorId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// StatusHistoryResponse wraps a lead's transition history, newest first.
type StatusHistoryResponse struct {
	Items []StatusTransitionResponse `json:"items"`
}

// CreateLeadNoteRequest adds a note to a lead.
type CreateLeadNoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// UpdateLeadNoteRequest edits an existing note.
type UpdateLeadNoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// LeadNoteResponse is the API shape of a note.
type LeadNoteResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeadNotesResponse wraps a lead's notes.
type LeadNotesResponse struct {
	Items []LeadNoteResponse `json:"items"`
}

// TimelineItemResponse is one entry in the merged activity feed.
type TimelineItemResponse struct {
	Kind      string         `json:"kind"`
	Label     string         `json:"label"`
	ActorID   *uuid.UUID     `json:"actorId,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TimelineResponse wraps the merged feed, newest first.
type TimelineResponse struct {
	Items []TimelineItemResponse `json:"items"`
}
