package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-queue/internal/events"
	"github.com/spec-kit/ticket-queue/internal/observability"
)

// ActivityService logs manager events and counts them per type.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handleTicketCreated)
	a.dispatcher.Subscribe(events.EventTicketStatusChanged, a.handleTicketStatusChanged)
	a.dispatcher.Subscribe(events.EventTicketAssigned, a.handleTicketAssigned)
	a.dispatcher.Subscribe(events.EventTicketProcessed, a.handleTicketProcessed)
	a.dispatcher.Subscribe(events.EventActionUndone, a.handleActionUndone)
}

func (a *ActivityService) handleTicketCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordOperation(string(event.Type))
	return nil
}

func (a *ActivityService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordOperation(string(event.Type))
	return nil
}

func (a *ActivityService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketAssigned", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordOperation(string(event.Type))
	return nil
}

func (a *ActivityService) handleTicketProcessed(ctx context.Context, event events.Event) error {
	a.logger.Info("TicketProcessed", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	a.metrics.RecordOperation(string(event.Type))
	return nil
}

// Undo only drops the history entry; the log line says so for operators reading it.
func (a *ActivityService) handleActionUndone(ctx context.Context, event events.Event) error {
	a.logger.Info("ActionUndone",
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload),
		zap.Bool("ticket_reverted", false))
	a.metrics.RecordOperation(string(event.Type))
	return nil
}
