package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-queue/internal/domain"
	"github.com/spec-kit/ticket-queue/internal/events"
	"github.com/spec-kit/ticket-queue/internal/repository"
)

// AuditRecorder appends every manager event to the action audit table.
type AuditRecorder struct {
	dispatcher events.Dispatcher
	repo       repository.ActionAuditRepository
	logger     *zap.Logger
}

// NewAuditRecorder creates the recorder.
func NewAuditRecorder(dispatcher events.Dispatcher, repo repository.ActionAuditRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{dispatcher: dispatcher, repo: repo, logger: logger}
}

// RegisterHandlers subscribes to every manager event.
func (r *AuditRecorder) RegisterHandlers() {
	if r.dispatcher == nil || r.repo == nil {
		return
	}
	events.SubscribeAll(r.dispatcher, r.handleEvent)
}

func (r *AuditRecorder) handleEvent(ctx context.Context, event events.Event) error {
	payload, err := payloadMap(event.Payload)
	if err != nil {
		return err
	}
	entry := &domain.ActionAuditEntry{
		EventID:     event.ID,
		EventType:   string(event.Type),
		TicketID:    event.TicketID,
		ActionType:  event.Action.Type,
		Description: event.Action.Description,
		Payload:     payload,
		OccurredAt:  event.Timestamp,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record audit for %s: %w", event.Type, err)
	}
	r.logger.Debug("audit recorded", zap.Int64("audit_id", entry.ID), zap.String("event_type", string(event.Type)))
	return nil
}

func payloadMap(payload any) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"value": string(raw)}, nil
	}
	return out, nil
}
