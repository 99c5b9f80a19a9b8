package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-queue/internal/domain"
	"github.com/spec-kit/ticket-queue/internal/events"
	"github.com/spec-kit/ticket-queue/internal/history"
	"github.com/spec-kit/ticket-queue/internal/queue"
)

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrInvalidStatus     = errors.New("invalid ticket status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TicketManager owns ticket identity, the per-status queues and the action history
// for one session. A single mutex serializes every operation so a ticket's status
// and its queue membership change together.
type TicketManager struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	order   []string
	queues  map[domain.TicketStatus]*queue.StatusQueue
	history *history.ActionHistory

	enforceTransitions bool
	dispatcher         events.Dispatcher
	logger             *zap.Logger
}

// ManagerOptions configures a TicketManager.
type ManagerOptions struct {
	HistoryCapacity    int
	EnforceTransitions bool
	Dispatcher         events.Dispatcher
	Logger             *zap.Logger
}

// Metrics summarizes the tickets a manager holds.
type Metrics struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Critical   int `json:"critical"`
	High       int `json:"high"`
}

// TechnicianMetrics summarizes the tickets assigned to one technician.
type TechnicianMetrics struct {
	Technician string `json:"technician"`
	Total      int    `json:"total"`
	InProgress int    `json:"in_progress"`
	Resolved   int    `json:"resolved"`
	Critical   int    `json:"critical"`
}

// NewTicketManager constructs an empty manager with one queue per status.
func NewTicketManager(opts ManagerOptions) *TicketManager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	queues := make(map[domain.TicketStatus]*queue.StatusQueue, len(domain.Statuses()))
	for _, status := range domain.Statuses() {
		queues[status] = queue.NewStatusQueue(status)
	}
	return &TicketManager{
		tickets:            make(map[string]*domain.Ticket),
		queues:             queues,
		history:            history.NewActionHistory(opts.HistoryCapacity),
		enforceTransitions: opts.EnforceTransitions,
		dispatcher:         opts.Dispatcher,
		logger:             logger,
	}
}

// CreateTicket builds a new ticket and registers it.
func (m *TicketManager) CreateTicket(ctx context.Context, title, description, client string, priority domain.TicketPriority) *domain.Ticket {
	ticket := domain.NewTicket(title, description, client, priority)

	m.mu.Lock()
	for {
		if _, taken := m.tickets[ticket.ID]; !taken {
			break
		}
		ticket.ID = domain.GenerateTicketID()
	}
	event := m.addLocked(ticket)
	created := ticket.Clone()
	m.mu.Unlock()

	m.publish(ctx, event)
	return created
}

// AddTicket registers ticket and enqueues it under its current status. The manager
// takes ownership of ticket. It reports false, changing nothing, for nil, an invalid
// status or an identity that is already registered.
func (m *TicketManager) AddTicket(ctx context.Context, ticket *domain.Ticket) bool {
	if ticket == nil || !ticket.Status.Valid() {
		return false
	}

	m.mu.Lock()
	if _, taken := m.tickets[ticket.ID]; taken {
		m.mu.Unlock()
		m.logger.Warn("ticket already registered", zap.String("ticket_id", ticket.ID))
		return false
	}
	event := m.addLocked(ticket)
	m.mu.Unlock()

	m.publish(ctx, event)
	return true
}

func (m *TicketManager) addLocked(ticket *domain.Ticket) events.Event {
	m.tickets[ticket.ID] = ticket
	m.order = append(m.order, ticket.ID)
	m.queues[ticket.Status].Enqueue(ticket)
	m.logger.Debug("ticket enqueued", zap.String("ticket_id", ticket.ID), zap.String("status", string(ticket.Status)))

	return m.recordLocked(domain.Action{
		Type:        domain.ActionTicketCreated,
		Payload:     domain.TicketCreatedPayload{TicketID: ticket.ID, Title: ticket.Title},
		Description: fmt.Sprintf("Ticket created: %s", ticket.Title),
	})
}

// UpdateTicketStatus moves a ticket to newStatus and reports whether it happened.
func (m *TicketManager) UpdateTicketStatus(ctx context.Context, id string, newStatus domain.TicketStatus) bool {
	_, err := m.ChangeStatus(ctx, id, newStatus)
	return err == nil
}

// ChangeStatus moves a ticket from its current queue to the queue of newStatus and
// returns the updated ticket. Nothing changes when it returns an error.
func (m *TicketManager) ChangeStatus(ctx context.Context, id string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	m.mu.Lock()
	ticket, ok := m.tickets[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrTicketNotFound
	}
	oldStatus := ticket.Status
	if m.enforceTransitions && !domain.CanTransition(oldStatus, newStatus) {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, oldStatus, newStatus)
	}

	if q, ok := m.queues[oldStatus]; ok {
		q.RemoveByID(id)
	}
	ticket.SetStatus(newStatus)
	m.queues[newStatus].Enqueue(ticket)

	event := m.recordLocked(domain.Action{
		Type:        domain.ActionStatusChanged,
		Payload:     domain.StatusChangedPayload{TicketID: id, OldStatus: oldStatus, NewStatus: newStatus},
		Description: fmt.Sprintf("Status changed from %s to %s for ticket %s", oldStatus, newStatus, id),
	})
	updated := ticket.Clone()
	m.mu.Unlock()

	m.logger.Info("ticket status changed",
		zap.String("ticket_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)))
	m.publish(ctx, event)
	return updated, nil
}

// AssignTicket sets the technician for a ticket and reports whether it exists.
func (m *TicketManager) AssignTicket(ctx context.Context, id, technician string) bool {
	_, err := m.Assign(ctx, id, technician)
	return err == nil
}

// Assign overwrites the ticket's assignee and returns the updated ticket.
// Queue membership is unaffected.
func (m *TicketManager) Assign(ctx context.Context, id, technician string) (*domain.Ticket, error) {
	m.mu.Lock()
	ticket, ok := m.tickets[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrTicketNotFound
	}
	var previous *string
	if ticket.AssignedTo != nil {
		prev := *ticket.AssignedTo
		previous = &prev
	}
	ticket.Assign(technician)

	event := m.recordLocked(domain.Action{
		Type:        domain.ActionTicketAssigned,
		Payload:     domain.TicketAssignedPayload{TicketID: id, OldTechnician: previous, NewTechnician: technician},
		Description: fmt.Sprintf("Ticket %s assigned to %s", id, technician),
	})
	updated := ticket.Clone()
	m.mu.Unlock()

	m.logger.Info("ticket assigned", zap.String("ticket_id", id), zap.String("technician", technician))
	m.publish(ctx, event)
	return updated, nil
}

// ProcessNextTicket dequeues the oldest ticket waiting under status. It returns nil,
// recording nothing, when the queue is empty.
//
// The ticket keeps its status and stays registered, so afterwards it belongs to no
// queue until its status is changed again.
func (m *TicketManager) ProcessNextTicket(ctx context.Context, status domain.TicketStatus) *domain.Ticket {
	m.mu.Lock()
	q, ok := m.queues[status]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	ticket, ok := q.Dequeue()
	if !ok {
		m.mu.Unlock()
		m.logger.Debug("queue empty", zap.String("status", string(status)))
		return nil
	}

	event := m.recordLocked(domain.Action{
		Type:        domain.ActionTicketProcessed,
		Payload:     domain.TicketProcessedPayload{TicketID: ticket.ID, Status: status},
		Description: fmt.Sprintf("Ticket %s processed from queue %s", ticket.ID, status),
	})
	processed := ticket.Clone()
	m.mu.Unlock()

	m.logger.Info("ticket processed", zap.String("ticket_id", processed.ID), zap.String("status", string(status)))
	m.publish(ctx, event)
	return processed
}

// GetNextTicket returns the head of the status queue without removing it.
func (m *TicketManager) GetNextTicket(status domain.TicketStatus) *domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queues[status]
	if !ok {
		return nil
	}
	ticket, ok := q.Peek()
	if !ok {
		return nil
	}
	return ticket.Clone()
}

// GetTicketsByStatus returns the queue contents for status in FIFO order.
func (m *TicketManager) GetTicketsByStatus(status domain.TicketStatus) []domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queues[status]
	if !ok {
		return []domain.Ticket{}
	}
	return copyTickets(q.GetAll())
}

// GetAllTickets returns every registered ticket in registration order.
func (m *TicketManager) GetAllTickets() []domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterLocked(func(*domain.Ticket) bool { return true })
}

// GetTicketByID returns the ticket with id.
func (m *TicketManager) GetTicketByID(id string) (*domain.Ticket, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, false
	}
	return ticket.Clone(), true
}

// SearchTickets returns every ticket whose title, description, client or ID
// contains query, ignoring case.
func (m *TicketManager) SearchTickets(query string) []domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterLocked(func(t *domain.Ticket) bool { return t.Matches(query) })
}

// GetTicketsByTechnician returns the tickets currently assigned to technician.
func (m *TicketManager) GetTicketsByTechnician(technician string) []domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterLocked(func(t *domain.Ticket) bool {
		return t.AssignedTo != nil && *t.AssignedTo == technician
	})
}

// GetTechnicianMetrics counts the tickets assigned to technician.
func (m *TicketManager) GetTechnicianMetrics(technician string) TechnicianMetrics {
	metrics := TechnicianMetrics{Technician: technician}
	for _, t := range m.GetTicketsByTechnician(technician) {
		metrics.Total++
		switch t.Status {
		case domain.TicketStatusInProgress:
			metrics.InProgress++
		case domain.TicketStatusResolved:
			metrics.Resolved++
		}
		if t.Priority == domain.TicketPriorityCritical {
			metrics.Critical++
		}
	}
	return metrics
}

// GetMetrics counts registered tickets. Per-status counts are the queue sizes.
func (m *TicketManager) GetMetrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics := Metrics{
		Total:      len(m.tickets),
		New:        m.queues[domain.TicketStatusNew].Size(),
		InProgress: m.queues[domain.TicketStatusInProgress].Size(),
		Resolved:   m.queues[domain.TicketStatusResolved].Size(),
		Closed:     m.queues[domain.TicketStatusClosed].Size(),
	}
	for _, ticket := range m.tickets {
		switch ticket.Priority {
		case domain.TicketPriorityCritical:
			metrics.Critical++
		case domain.TicketPriorityHigh:
			metrics.High++
		}
	}
	return metrics
}

// GetRecentActions returns up to n actions, most recent first.
func (m *TicketManager) GetRecentActions(n int) []domain.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.GetRecent(n)
}

// HistorySize returns the number of retained actions.
func (m *TicketManager) HistorySize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Len()
}

// UndoLastAction pops the most recent action. Ticket state is not reverted.
func (m *TicketManager) UndoLastAction(ctx context.Context) (domain.Action, bool) {
	m.mu.Lock()
	action, ok := m.history.Pop()
	m.mu.Unlock()
	if !ok {
		m.logger.Debug("history empty")
		return domain.Action{}, false
	}

	m.logger.Info("action undone", zap.String("action_type", string(action.Type)), zap.String("description", action.Description))
	m.publish(ctx, events.Event{
		Type:     events.EventActionUndone,
		TicketID: action.TicketID(),
		Action:   action,
		Payload: events.ActionUndonePayload{
			ActionType:  action.Type,
			Description: action.Description,
		},
	})
	return action, true
}

func (m *TicketManager) recordLocked(action domain.Action) events.Event {
	if action.Timestamp.IsZero() {
		action.Timestamp = time.Now()
	}
	m.history.Push(action)
	m.logger.Debug("action recorded", zap.String("action_type", string(action.Type)), zap.Int("history_size", m.history.Len()))
	return events.Event{
		Type:      events.EventTypeForAction(action.Type),
		TicketID:  action.TicketID(),
		Timestamp: action.Timestamp,
		Action:    action,
		Payload:   action.Payload,
	}
}

func (m *TicketManager) filterLocked(keep func(*domain.Ticket) bool) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(m.order))
	for _, id := range m.order {
		ticket := m.tickets[id]
		if keep(ticket) {
			out = append(out, *ticket.Clone())
		}
	}
	return out
}

// publish runs outside the lock so subscribers can read from the manager.
func (m *TicketManager) publish(ctx context.Context, event events.Event) {
	if m.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := m.dispatcher.Publish(ctx, event); err != nil {
		m.logger.Warn("event subscriber failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func copyTickets(tickets []*domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, *ticket.Clone())
	}
	return out
}
