package audit

import (
	"context"
	"testing"

	"medportal_backend/internal/events"
	"medportal_backend/platform/logger"

	"github.com/google/uuid"
)

type recordingBus struct {
	subscriptions map[string]events.Handler
}

func (b *recordingBus) Publish(_ context.Context, _ events.Event) {}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	if h, ok := b.subscriptions[event.EventName()]; ok {
		return h.Handle(ctx, event)
	}
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {
	if b.subscriptions == nil {
		b.subscriptions = make(map[string]events.Handler)
	}
	b.subscriptions[eventName] = handler
}

func TestRegisterHandlersCoversAllDomainEvents(t *testing.T) {
	bus := &recordingBus{}
	New(logger.New("test")).RegisterHandlers(bus)

	want := []string{
		events.LeadCreated{}.EventName(),
		events.LeadStatusChanged{}.EventName(),
		events.EmailDispatched{}.EventName(),
		events.MeetingLinkCreated{}.EventName(),
		events.MeetingReconciled{}.EventName(),
	}
	for _, name := range want {
		if _, ok := bus.subscriptions[name]; !ok {
			t.Fatalf("no handler registered for %s", name)
		}
	}
	if len(bus.subscriptions) != len(want) {
		t.Fatalf("unexpected subscription count: got %d want %d", len(bus.subscriptions), len(want))
	}
}

func TestHandleAcceptsEveryPublishedEvent(t *testing.T) {
	bus := &recordingBus{}
	New(logger.New("test")).RegisterHandlers(bus)

	published := []events.Event{
		events.LeadCreated{BaseEvent: events.NewBaseEvent(), LeadID: uuid.New(), Source: "website"},
		events.LeadStatusChanged{BaseEvent: events.NewBaseEvent(), LeadID: uuid.New(), NewStatusID: 2},
		events.EmailDispatched{BaseEvent: events.NewBaseEvent(), LeadID: uuid.New(), AdminID: uuid.New(), Provider: "brevo"},
		events.MeetingLinkCreated{BaseEvent: events.NewBaseEvent(), LeadID: uuid.New(), MeetingID: uuid.New()},
		events.MeetingReconciled{BaseEvent: events.NewBaseEvent(), LeadID: uuid.New(), MeetingID: uuid.New(), Status: "cancelled"},
	}
	for _, event := range published {
		if err := bus.PublishSync(context.Background(), event); err != nil {
			t.Fatalf("handler rejected %s: %v", event.EventName(), err)
		}
	}
}
