package timeline

import (
	"math/rand"
	"testing"
	"time"

	"medportal_backend/internal/leads/repository"

	"github.com/google/uuid"
)

func at(minutes int) time.Time {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}

func buildSources() ([]repository.StatusTransition, []repository.LeadNote, []repository.LeadEvent) {
	leadID := uuid.New()
	old := 1
	transitions := []repository.StatusTransition{
		{ID: uuid.New(), LeadID: leadID, OldStatusID: &old, NewStatusID: 2, NewStatusName: "Contacted", CreatedAt: at(10)},
	}
	notes := []repository.LeadNote{
		{ID: uuid.New(), LeadID: leadID, AuthorID: uuid.New(), Body: "called, no answer", CreatedAt: at(5)},
		{ID: uuid.New(), LeadID: leadID, AuthorID: uuid.New(), Body: "follow up tomorrow", CreatedAt: at(20)},
	}
	events := []repository.LeadEvent{
		{ID: uuid.New(), LeadID: leadID, EventType: repository.EventEmailSent, CreatedAt: at(15)},
		// Redundant with the transition above: must be filtered out.
		{ID: uuid.New(), LeadID: leadID, EventType: repository.EventStatusChanged, CreatedAt: at(10)},
	}
	return transitions, notes, events
}

func TestMergeOrderAndFiltering(t *testing.T) {
	transitions, notes, events := buildSources()

	items := Merge(transitions, notes, events)

	if len(items) != 4 {
		t.Fatalf("expected 4 items (status_changed event filtered), got %d", len(items))
	}

	wantKinds := []Kind{KindNote, KindEvent, KindStatus, KindNote}
	for i, want := range wantKinds {
		if items[i].Kind != want {
			t.Fatalf("item %d: expected kind %s, got %s", i, want, items[i].Kind)
		}
	}

	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("items not ordered newest first at index %d", i)
		}
	}
}

func TestMergeOrderInvariantUnderInputShuffle(t *testing.T) {
	transitions, notes, events := buildSources()
	reference := Merge(transitions, notes, events)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		rng.Shuffle(len(notes), func(i, j int) { notes[i], notes[j] = notes[j], notes[i] })
		rng.Shuffle(len(events), func(i, j int) { events[i], events[j] = events[j], events[i] })

		merged := Merge(transitions, notes, events)
		if len(merged) != len(reference) {
			t.Fatalf("trial %d: length changed: %d != %d", trial, len(merged), len(reference))
		}
		for i := range merged {
			if merged[i].CreatedAt != reference[i].CreatedAt || merged[i].Kind != reference[i].Kind {
				t.Fatalf("trial %d: item %d differs after shuffle", trial, i)
			}
		}
	}
}

func TestLabelRendering(t *testing.T) {
	old := "New"
	oldID := 1
	statusItem := Item{Kind: KindStatus, Transition: &repository.StatusTransition{
		OldStatusID: &oldID, OldStatusName: &old, NewStatusName: "Contacted",
	}}
	if got := statusItem.Label(); got != "status changed from New to Contacted" {
		t.Fatalf("unexpected status label: %q", got)
	}

	first := Item{Kind: KindStatus, Transition: &repository.StatusTransition{NewStatusName: "New"}}
	if got := first.Label(); got != "status changed from (none) to New" {
		t.Fatalf("unexpected first transition label: %q", got)
	}

	noteItem := Item{Kind: KindNote, Note: &repository.LeadNote{Body: "raw note text"}}
	if got := noteItem.Label(); got != "raw note text" {
		t.Fatalf("unexpected note label: %q", got)
	}

	eventItem := Item{Kind: KindEvent, Event: &repository.LeadEvent{EventType: "calendly_scheduled"}}
	if got := eventItem.Label(); got != "calendly scheduled" {
		t.Fatalf("unexpected event label: %q", got)
	}
}
