package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates ticket urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

const ticketIDPrefix = "TICKET-"

// Statuses returns every status in lifecycle order.
func Statuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusNew,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed,
	}
}

// Priorities returns every priority from lowest to highest.
func Priorities() []TicketPriority {
	return []TicketPriority{
		TicketPriorityLow,
		TicketPriorityMedium,
		TicketPriorityHigh,
		TicketPriorityCritical,
	}
}

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	for _, candidate := range Statuses() {
		if candidate == s {
			return true
		}
	}
	return false
}

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	for _, candidate := range Priorities() {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseStatus normalizes raw input into a TicketStatus.
func ParseStatus(raw string) (TicketStatus, bool) {
	status := TicketStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.Valid()
}

// ParsePriority normalizes raw input into a TicketPriority. Empty input yields medium.
func ParsePriority(raw string) (TicketPriority, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TicketPriorityMedium, true
	}
	priority := TicketPriority(strings.ToLower(trimmed))
	return priority, priority.Valid()
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Client      string
	Priority    TicketPriority
	Status      TicketStatus
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTicket builds a ticket in the new state with a fresh identity.
func NewTicket(title, description, client string, priority TicketPriority) *Ticket {
	if priority == "" {
		priority = TicketPriorityMedium
	}
	now := time.Now()
	return &Ticket{
		ID:          GenerateTicketID(),
		Title:       title,
		Description: description,
		Client:      client,
		Priority:    priority,
		Status:      TicketStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GenerateTicketID returns "TICKET-" followed by 12 upper-case hex characters.
func GenerateTicketID() string {
	return ticketIDPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// SetStatus moves the ticket to status without checking transition legality.
func (t *Ticket) SetStatus(status TicketStatus) {
	t.Status = status
	t.UpdatedAt = time.Now()
}

// Assign overwrites the current assignee.
func (t *Ticket) Assign(technician string) {
	t.AssignedTo = &technician
	t.UpdatedAt = time.Now()
}

// Assignee returns the technician name or "" when unassigned.
func (t *Ticket) Assignee() string {
	if t.AssignedTo == nil {
		return ""
	}
	return *t.AssignedTo
}

// Clone returns a detached copy safe to hand to callers.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	cp := *t
	if t.AssignedTo != nil {
		assignee := *t.AssignedTo
		cp.AssignedTo = &assignee
	}
	return &cp
}

// Matches reports whether query is a case-insensitive substring of the
// title, description, client or ID.
func (t *Ticket) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.Client), q) ||
		strings.Contains(strings.ToLower(t.ID), q)
}
