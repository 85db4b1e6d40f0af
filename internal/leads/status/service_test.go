package status

import (
	"context"
	"testing"

	"medportal_backend/internal/events"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/platform/apperr"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	lead        repository.Lead
	statuses    map[int]bool
	transitions []repository.StatusTransition
}

func (f *fakeRepo) GetLeadByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	if id != f.lead.ID {
		return repository.Lead{}, repository.ErrNotFound
	}
	return f.lead, nil
}

func (f *fakeRepo) StatusExists(_ context.Context, statusID int) (bool, error) {
	return f.statuses[statusID], nil
}

func (f *fakeRepo) UpdateLeadStatus(_ context.Context, leadID uuid.UUID, statusID int) (int, error) {
	if leadID != f.lead.ID {
		return 0, repository.ErrNotFound
	}
	old := f.lead.StatusID
	f.lead.StatusID = statusID
	return old, nil
}

func (f *fakeRepo) CreateTransition(_ context.Context, params repository.CreateTransitionParams) (repository.StatusTransition, error) {
	tr := repository.StatusTransition{
		ID:          uuid.New(),
		LeadID:      params.LeadID,
		OldStatusID: params.OldStatusID,
		NewStatusID: params.NewStatusID,
		ActorID:     params.ActorID,
	}
	f.transitions = append(f.transitions, tr)
	return tr, nil
}

func (f *fakeRepo) ListTransitions(_ context.Context, _ uuid.UUID) ([]repository.StatusTransition, error) {
	// Newest first.
	out := make([]repository.StatusTransition, 0, len(f.transitions))
	for i := len(f.transitions) - 1; i >= 0; i-- {
		out = append(out, f.transitions[i])
	}
	return out, nil
}

type noopBus struct{}

func (noopBus) Publish(context.Context, events.Event)           {}
func (noopBus) PublishSync(context.Context, events.Event) error { return nil }
func (noopBus) Subscribe(string, events.Handler)                {}

func newFixture() (*Service, *fakeRepo) {
	repo := &fakeRepo{
		lead:     repository.Lead{ID: uuid.New(), StatusID: 1},
		statuses: map[int]bool{1: true, 2: true, 3: true},
	}
	return New(repo, noopBus{}), repo
}

func TestSetStatusRepeatedStatusRecordsOneTransition(t *testing.T) {
	svc, repo := newFixture()
	leadID := repo.lead.ID

	if err := svc.SetStatus(context.Background(), leadID, 2, nil); err != nil {
		t.Fatalf("first SetStatus: %v", err)
	}
	if err := svc.SetStatus(context.Background(), leadID, 2, nil); err != nil {
		t.Fatalf("second SetStatus: %v", err)
	}

	if len(repo.transitions) != 1 {
		t.Fatalf("expected exactly one transition, got %d", len(repo.transitions))
	}
	tr := repo.transitions[0]
	if tr.OldStatusID == nil || *tr.OldStatusID != 1 || tr.NewStatusID != 2 {
		t.Fatalf("expected transition 1→2, got %v→%d", tr.OldStatusID, tr.NewStatusID)
	}
	if repo.lead.StatusID != 2 {
		t.Fatalf("expected current status 2, got %d", repo.lead.StatusID)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, repo := newFixture()

	err := svc.SetStatus(context.Background(), repo.lead.ID, 99, nil)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if len(repo.transitions) != 0 {
		t.Fatalf("expected no transitions, got %d", len(repo.transitions))
	}
}

func TestSetStatusUnknownLead(t *testing.T) {
	svc, _ := newFixture()

	err := svc.SetStatus(context.Background(), uuid.New(), 2, nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, repo := newFixture()
	leadID := repo.lead.ID
	actor := uuid.New()

	_ = svc.SetStatus(context.Background(), leadID, 2, &actor)
	_ = svc.SetStatus(context.Background(), leadID, 3, &actor)

	resp, err := svc.History(context.Background(), leadID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(resp.Items))
	}
	if resp.Items[0].NewStatusID != 3 || resp.Items[1].NewStatusID != 2 {
		t.Fatalf("expected newest first ordering, got %d then %d", resp.Items[0].NewStatusID, resp.Items[1].NewStatusID)
	}
}
