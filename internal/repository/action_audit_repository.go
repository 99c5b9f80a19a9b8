package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-queue/internal/domain"
)

// RowQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ActionAuditRepository stores audit entries.
type ActionAuditRepository interface {
	Create(ctx context.Context, entry *domain.ActionAuditEntry) error
}

type actionAuditRepository struct {
	db RowQuerier
}

// NewActionAuditRepository builds repository.
func NewActionAuditRepository(db RowQuerier) ActionAuditRepository {
	return &actionAuditRepository{db: db}
}

func (r *actionAuditRepository) Create(ctx context.Context, entry *domain.ActionAuditEntry) error {
	const query = `
        INSERT INTO ticket_action_audit (event_id, event_type, ticket_id, action_type, description, payload, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, recorded_at`
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	return r.db.QueryRow(ctx, query,
		entry.EventID,
		entry.EventType,
		entry.TicketID,
		entry.ActionType,
		entry.Description,
		payload,
		entry.OccurredAt,
	).Scan(&entry.ID, &entry.RecordedAt)
}
