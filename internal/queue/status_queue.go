// Package queue holds the per-status FIFO containers used by the ticket manager.
package queue

import "github.com/spec-kit/ticket-queue/internal/domain"

// StatusQueue is a FIFO of ticket references sharing one status.
// It is not safe for concurrent use; the owning manager serializes access.
type StatusQueue struct {
	status domain.TicketStatus
	items  []*domain.Ticket
}

// NewStatusQueue creates an empty queue for status.
func NewStatusQueue(status domain.TicketStatus) *StatusQueue {
	return &StatusQueue{status: status}
}

// Status returns the status this queue partitions.
func (q *StatusQueue) Status() domain.TicketStatus {
	return q.status
}

// Enqueue appends ticket at the tail.
func (q *StatusQueue) Enqueue(ticket *domain.Ticket) {
	q.items = append(q.items, ticket)
}

// Dequeue removes and returns the head. ok is false when the queue is empty.
func (q *StatusQueue) Dequeue() (*domain.Ticket, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	head := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return head, true
}

// Peek returns the head without removing it.
func (q *StatusQueue) Peek() (*domain.Ticket, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

// FindByID returns the queued ticket with id.
func (q *StatusQueue) FindByID(id string) (*domain.Ticket, bool) {
	for _, ticket := range q.items {
		if ticket.ID == id {
			return ticket, true
		}
	}
	return nil, false
}

// RemoveByID removes the ticket with id wherever it sits and reports whether it was present.
func (q *StatusQueue) RemoveByID(id string) bool {
	for i, ticket := range q.items {
		if ticket.ID != id {
			continue
		}
		copy(q.items[i:], q.items[i+1:])
		q.items[len(q.items)-1] = nil
		q.items = q.items[:len(q.items)-1]
		return true
	}
	return false
}

// GetAll returns the queued tickets in FIFO order. The slice is a copy;
// the tickets are the queue's own references.
func (q *StatusQueue) GetAll() []*domain.Ticket {
	out := make([]*domain.Ticket, len(q.items))
	copy(out, q.items)
	return out
}

// Size returns the number of queued tickets.
func (q *StatusQueue) Size() int {
	return len(q.items)
}

// IsEmpty reports whether nothing is queued.
func (q *StatusQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// Clear drops every queued reference.
func (q *StatusQueue) Clear() {
	q.items = nil
}
