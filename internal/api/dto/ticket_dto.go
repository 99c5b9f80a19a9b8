package dto

import (
	"time"

	"github.com/spec-kit/ticket-queue/internal/domain"
	"github.com/spec-kit/ticket-queue/internal/observability"
	"github.com/spec-kit/ticket-queue/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Client      string `json:"client"`
	Priority    string `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	Technician string `json:"technician"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Client      string                `json:"client"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	AssignedTo  *string               `json:"assigned_to"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ActionResponse is the wire form of a history entry.
type ActionResponse struct {
	Type        domain.ActionType `json:"type"`
	TicketID    string            `json:"ticket_id,omitempty"`
	Description string            `json:"description"`
	Payload     any               `json:"payload"`
	Timestamp   time.Time         `json:"timestamp"`
}

// MetricsResponse pairs manager metrics with process counters.
type MetricsResponse struct {
	service.Metrics
	HistorySize int                           `json:"history_size"`
	Counters    observability.MetricsSnapshot `json:"counters"`
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Client:      ticket.Client,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
		AssignedTo:  ticket.AssignedTo,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketResponses maps a list, never returning nil.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// NewActionResponse maps a history entry.
func NewActionResponse(action domain.Action) ActionResponse {
	return ActionResponse{
		Type:        action.Type,
		TicketID:    action.TicketID(),
		Description: action.Description,
		Payload:     action.Payload,
		Timestamp:   action.Timestamp,
	}
}

// NewActionResponses maps a list, never returning nil.
func NewActionResponses(actions []domain.Action) []ActionResponse {
	out := make([]ActionResponse, 0, len(actions))
	for _, action := range actions {
		out = append(out, NewActionResponse(action))
	}
	return out
}
