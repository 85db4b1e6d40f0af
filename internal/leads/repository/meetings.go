package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Scheduled meeting statuses.
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCancelled = "cancelled"
)

// ScheduledMeeting links a lead to a scheduling-provider booking.
// BookingRef is nil until the provider's webhook confirms the booking.
type ScheduledMeeting struct {
	ID           uuid.UUID
	LeadID       uuid.UUID
	BookingURL   string
	BookingRef   *string
	InviteeEmail string
	InviteeName  string
	Status       string
	ScheduledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateMeetingParams are the fields for a new meeting record.
type CreateMeetingParams struct {
	LeadID       uuid.UUID
	BookingURL   string
	InviteeEmail string
	InviteeName  string
}

// CreateMeeting inserts a meeting in status scheduled with no booking ref yet.
func (r *Repository) CreateMeeting(ctx context.Context, params CreateMeetingParams) (ScheduledMeeting, error) {
	var m ScheduledMeeting
	err := r.pool.QueryRow(ctx, `
		INSERT INTO scheduled_meetings (lead_id, booking_url, invitee_email, invitee_name, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, lead_id, booking_url, booking_ref, invitee_email, invitee_name, status, scheduled_at, created_at, updated_at
	`, params.LeadID, params.BookingURL, params.InviteeEmail, params.InviteeName, MeetingStatusScheduled).Scan(
		&m.ID,
		&m.LeadID,
		&m.BookingURL,
		&m.BookingRef,
		&m.InviteeEmail,
		&m.InviteeName,
		&m.Status,
		&m.ScheduledAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindMeetingByBookingRef looks a meeting up by the provider's event reference.
func (r *Repository) FindMeetingByBookingRef(ctx context.Context, bookingRef string) (ScheduledMeeting, error) {
	return r.findMeeting(ctx, `booking_ref = $1`, bookingRef)
}

// FindPendingMeetingByInviteeEmail returns the most recent meeting for the
// invitee that has not been confirmed by a webhook yet.
func (r *Repository) FindPendingMeetingByInviteeEmail(ctx context.Context, email string) (ScheduledMeeting, error) {
	return r.findMeeting(ctx, `invitee_email = $1 AND booking_ref IS NULL`, email)
}

func (r *Repository) findMeeting(ctx context.Context, where string, arg any) (ScheduledMeeting, error) {
	var m ScheduledMeeting
	err := r.pool.QueryRow(ctx, `
		SELECT id, lead_id, booking_url, booking_ref, invitee_email, invitee_name, status, scheduled_at, created_at, updated_at
		FROM scheduled_meetings
		WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT 1
	`, arg).Scan(
		&m.ID,
		&m.LeadID,
		&m.BookingURL,
		&m.BookingRef,
		&m.InviteeEmail,
		&m.InviteeName,
		&m.Status,
		&m.ScheduledAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ScheduledMeeting{}, ErrNotFound
	}
	return m, err
}

// AttachBooking records the provider's event reference and scheduled time on
// a meeting and marks it scheduled. Safe under webhook replay: re-applying
// the same reference reaches the same end state.
func (r *Repository) AttachBooking(ctx context.Context, meetingID uuid.UUID, bookingRef string, scheduledAt *time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE scheduled_meetings
		SET booking_ref = $2, scheduled_at = $3, status = $4, updated_at = now()
		WHERE id = $1
	`, meetingID, bookingRef, scheduledAt, MeetingStatusScheduled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMeetingStatus sets the meeting status.
func (r *Repository) UpdateMeetingStatus(ctx context.Context, meetingID uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE scheduled_meetings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`, meetingID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
