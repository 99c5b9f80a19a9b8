package domain

import "time"

// ActionType tags a recorded manager mutation.
type ActionType string

const (
	ActionTicketCreated   ActionType = "ticket_created"
	ActionStatusChanged   ActionType = "status_changed"
	ActionTicketAssigned  ActionType = "ticket_assigned"
	ActionTicketProcessed ActionType = "ticket_processed"
)

// Action is an immutable history entry.
type Action struct {
	Type        ActionType
	Payload     any
	Timestamp   time.Time
	Description string
}

// TicketID extracts the ticket identity from a known payload type.
func (a Action) TicketID() string {
	switch p := a.Payload.(type) {
	case TicketCreatedPayload:
		return p.TicketID
	case StatusChangedPayload:
		return p.TicketID
	case TicketAssignedPayload:
		return p.TicketID
	case TicketProcessedPayload:
		return p.TicketID
	default:
		return ""
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID string `json:"ticket_id"`
	Title    string `json:"title"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	TicketID  string       `json:"ticket_id"`
	OldStatus TicketStatus `json:"old_status"`
	NewStatus TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID      string  `json:"ticket_id"`
	OldTechnician *string `json:"old_technician,omitempty"`
	NewTechnician string  `json:"new_technician"`
}

// TicketProcessedPayload payload.
type TicketProcessedPayload struct {
	TicketID string       `json:"ticket_id"`
	Status   TicketStatus `json:"status"`
}
