package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-queue/internal/domain"
)

type fakeRow struct {
	id         int64
	recordedAt time.Time
	err        error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	*dest[1].(*time.Time) = r.recordedAt
	return nil
}

type fakeQuerier struct {
	sql  string
	args []any
	row  fakeRow
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return q.row
}

func TestActionAuditCreate(t *testing.T) {
	recorded := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeQuerier{row: fakeRow{id: 42, recordedAt: recorded}}
	repo := NewActionAuditRepository(db)

	occurred := recorded.Add(-time.Second)
	entry := &domain.ActionAuditEntry{
		EventID:     "evt-1",
		EventType:   "ticket_status_changed",
		TicketID:    "TICKET-1",
		ActionType:  domain.ActionStatusChanged,
		Description: "Status changed",
		Payload:     map[string]any{"old_status": "new", "new_status": "in-progress"},
		OccurredAt:  occurred,
	}
	require.NoError(t, repo.Create(context.Background(), entry))

	assert.Equal(t, int64(42), entry.ID)
	assert.Equal(t, recorded, entry.RecordedAt)
	assert.Contains(t, db.sql, "INSERT INTO ticket_action_audit")
	require.Len(t, db.args, 7)
	assert.Equal(t, "TICKET-1", db.args[2])
	assert.Equal(t, occurred, db.args[6])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(db.args[5].([]byte), &payload))
	assert.Equal(t, "in-progress", payload["new_status"])
}

func TestActionAuditCreatePropagatesScanError(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewActionAuditRepository(&fakeQuerier{row: fakeRow{err: boom}})

	err := repo.Create(context.Background(), &domain.ActionAuditEntry{TicketID: "T"})
	assert.ErrorIs(t, err, boom)
}
