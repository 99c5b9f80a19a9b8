package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-queue/internal/domain"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "T1"}))
	assert.Equal(t, []string{"first:T1", "second:T1"}, calls)
}

func TestPublishKeepsGoingAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	ran := false
	d.Subscribe(EventTicketProcessed, func(context.Context, Event) error { return boom })
	d.Subscribe(EventTicketProcessed, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketProcessed})
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestSubscribeAllCoversEveryType(t *testing.T) {
	d := NewInMemoryDispatcher()
	seen := map[EventType]int{}
	SubscribeAll(d, func(_ context.Context, e Event) error {
		seen[e.Type]++
		return nil
	})
	for _, eventType := range AllEventTypes() {
		require.NoError(t, d.Publish(context.Background(), Event{Type: eventType}))
	}
	assert.Len(t, seen, len(AllEventTypes()))
}

func TestEventTypeForAction(t *testing.T) {
	assert.Equal(t, EventTicketCreated, EventTypeForAction(domain.ActionTicketCreated))
	assert.Equal(t, EventTicketStatusChanged, EventTypeForAction(domain.ActionStatusChanged))
	assert.Equal(t, EventTicketAssigned, EventTypeForAction(domain.ActionTicketAssigned))
	assert.Equal(t, EventTicketProcessed, EventTypeForAction(domain.ActionTicketProcessed))
}
