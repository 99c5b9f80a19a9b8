package events

import (
	"time"

	"github.com/spec-kit/ticket-queue/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketProcessed     EventType = "ticket_processed"
	EventActionUndone        EventType = "action_undone"
)

// AllEventTypes lists every event a manager publishes.
func AllEventTypes() []EventType {
	return []EventType{
		EventTicketCreated,
		EventTicketStatusChanged,
		EventTicketAssigned,
		EventTicketProcessed,
		EventActionUndone,
	}
}

// Event represents a domain event emitted after a manager mutation commits.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	TicketID  string        `json:"ticket_id"`
	Timestamp time.Time     `json:"timestamp"`
	Action    domain.Action `json:"-"`
	Payload   interface{}   `json:"payload"`
}

// ActionUndonePayload payload.
type ActionUndonePayload struct {
	ActionType  domain.ActionType `json:"action_type"`
	Description string            `json:"description"`
}

// EventTypeForAction maps a recorded action to the event announcing it.
func EventTypeForAction(actionType domain.ActionType) EventType {
	switch actionType {
	case domain.ActionTicketCreated:
		return EventTicketCreated
	case domain.ActionStatusChanged:
		return EventTicketStatusChanged
	case domain.ActionTicketAssigned:
		return EventTicketAssigned
	case domain.ActionTicketProcessed:
		return EventTicketProcessed
	default:
		return EventType(actionType)
	}
}
