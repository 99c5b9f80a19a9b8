package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-queue/internal/domain"
	"github.com/spec-kit/ticket-queue/internal/events"
)

// SnapshotWriter is the subset of the go-redis client the publisher needs.
type SnapshotWriter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// QueueSnapshot is the JSON document mirrored to Redis after every event.
type QueueSnapshot struct {
	GeneratedAt   time.Time                        `json:"generated_at"`
	LastEvent     events.EventType                 `json:"last_event"`
	Metrics       Metrics                          `json:"metrics"`
	Queues        map[domain.TicketStatus][]string `json:"queues"`
	HistorySize   int                              `json:"history_size"`
	RecentActions []string                         `json:"recent_actions"`
}

// SnapshotPublisher mirrors queue state to Redis for external dashboards.
// The mirror is write-only; nothing reads it back into a manager.
type SnapshotPublisher struct {
	dispatcher events.Dispatcher
	manager    *TicketManager
	writer     SnapshotWriter
	key        string
	ttl        time.Duration
	logger     *zap.Logger
}

// NewSnapshotPublisher creates the publisher.
func NewSnapshotPublisher(dispatcher events.Dispatcher, manager *TicketManager, writer SnapshotWriter, key string, ttl time.Duration, logger *zap.Logger) *SnapshotPublisher {
	return &SnapshotPublisher{
		dispatcher: dispatcher,
		manager:    manager,
		writer:     writer,
		key:        key,
		ttl:        ttl,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every manager event.
func (p *SnapshotPublisher) RegisterHandlers() {
	if p.dispatcher == nil || p.writer == nil {
		return
	}
	events.SubscribeAll(p.dispatcher, p.handleEvent)
}

func (p *SnapshotPublisher) handleEvent(ctx context.Context, event events.Event) error {
	snapshot := p.Build(event.Type)
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := p.writer.Set(ctx, p.key, body, p.ttl).Err(); err != nil {
		return fmt.Errorf("write snapshot %s: %w", p.key, err)
	}
	p.logger.Debug("snapshot published", zap.String("key", p.key), zap.String("event_type", string(event.Type)))
	return nil
}

// Build assembles the current snapshot.
func (p *SnapshotPublisher) Build(last events.EventType) QueueSnapshot {
	queues := make(map[domain.TicketStatus][]string, len(domain.Statuses()))
	for _, status := range domain.Statuses() {
		tickets := p.manager.GetTicketsByStatus(status)
		ids := make([]string, 0, len(tickets))
		for _, t := range tickets {
			ids = append(ids, t.ID)
		}
		queues[status] = ids
	}
	recent := p.manager.GetRecentActions(10)
	descriptions := make([]string, 0, len(recent))
	for _, action := range recent {
		descriptions = append(descriptions, action.Description)
	}
	return QueueSnapshot{
		GeneratedAt:   time.Now().UTC(),
		LastEvent:     last,
		Metrics:       p.manager.GetMetrics(),
		Queues:        queues,
		HistorySize:   p.manager.HistorySize(),
		RecentActions: descriptions,
	}
}
