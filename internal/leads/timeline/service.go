// Package timeline merges a lead's status transitions, notes and events into
// one time-ordered activity feed. This is a pure read-side projection with no
// side effects; it can be recomputed at any time from the three source tables.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"medportal_backend/internal/leads/repository"
	"medportal_backend/internal/leads/transport"
	"medportal_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Kind discriminates the source of a timeline item.
type Kind string

const (
	KindStatus Kind = "status"
	KindNote   Kind = "note"
	KindEvent  Kind = "event"
)

// Item is one entry in the merged feed: a variant over the three source
// record kinds carrying a common timestamp for ordering.
type Item struct {
	Kind       Kind
	ActorID    *uuid.UUID
	CreatedAt  time.Time
	Transition *repository.StatusTransition
	Note       *repository.LeadNote
	Event      *repository.LeadEvent
}

// Label renders the item's display text per kind.
func (i Item) Label() string {
	switch i.Kind {
	case KindStatus:
		old := "(none)"
		if i.Transition.OldStatusName != nil {
			old = *i.Transition.OldStatusName
		}
		return fmt.Sprintf("status changed from %s to %s", old, i.Transition.NewStatusName)
	case KindNote:
		return i.Note.Body
	default:
		return strings.ReplaceAll(i.Event.EventType, "_", " ")
	}
}

// Repository defines the data access interface needed by the timeline service.
type Repository interface {
	GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	ListTransitions(ctx context.Context, leadID uuid.UUID) ([]repository.StatusTransition, error)
	ListLeadNotes(ctx context.Context, leadID uuid.UUID) ([]repository.LeadNote, error)
	ListLeadEvents(ctx context.Context, leadID uuid.UUID) ([]repository.LeadEvent, error)
}

// Service computes the merged activity feed.
type Service struct {
	repo Repository
}

// New creates a new timeline service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Feed returns the merged feed for a lead, newest first.
func (s *Service) Feed(ctx context.Context, leadID uuid.UUID) (transport.TimelineResponse, error) {
	if _, err := s.repo.GetLeadByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.TimelineResponse{}, apperr.NotFound("lead not found")
		}
		return transport.TimelineResponse{}, err
	}

	var (
		transitions []repository.StatusTransition
		notesList   []repository.LeadNote
		eventsList  []repository.LeadEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transitions, err = s.repo.ListTransitions(gctx, leadID)
		return err
	})
	g.Go(func() error {
		var err error
		notesList, err = s.repo.ListLeadNotes(gctx, leadID)
		return err
	})
	g.Go(func() error {
		var err error
		eventsList, err = s.repo.ListLeadEvents(gctx, leadID)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.TimelineResponse{}, err
	}

	items := Merge(transitions, notesList, eventsList)

	out := make([]transport.TimelineItemResponse, len(items))
	for i, item := range items {
		resp := transport.TimelineItemResponse{
			Kind:      string(item.Kind),
			Label:     item.Label(),
			ActorID:   item.ActorID,
			CreatedAt: item.CreatedAt,
		}
		if item.Kind == KindEvent {
			resp.Payload = item.Event.Payload
		}
		out[i] = resp
	}

	return transport.TimelineResponse{Items: out}, nil
}

// Merge tags each source record with its kind and sorts the union newest
// first. Events that duplicate information already surfaced by a transition
// (generic status_changed events) are dropped before the merge so a state
// change appears once. Input ordering is irrelevant: the result depends only
// on the set of records.
func Merge(transitions []repository.StatusTransition, notesList []repository.LeadNote, eventsList []repository.LeadEvent) []Item {
	items := make([]Item, 0, len(transitions)+len(notesList)+len(eventsList))

	for i := range transitions {
		tr := &transitions[i]
		items = append(items, Item{
			Kind:       KindStatus,
			ActorID:    tr.ActorID,
			CreatedAt:  tr.CreatedAt,
			Transition: tr,
		})
	}
	for i := range notesList {
		note := &notesList[i]
		author := note.AuthorID
		items = append(items, Item{
			Kind:      KindNote,
			ActorID:   &author,
			CreatedAt: note.CreatedAt,
			Note:      note,
		})
	}
	for i := range eventsList {
		event := &eventsList[i]
		if event.EventType == repository.EventStatusChanged {
			continue
		}
		items = append(items, Item{
			Kind:      KindEvent,
			ActorID:   event.ActorID,
			CreatedAt: event.CreatedAt,
			Event:     event,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})

	return items
}
