package domain

import "time"

// ActionAuditEntry is an append-only copy of a manager action kept outside the process.
type ActionAuditEntry struct {
	ID          int64
	EventID     string
	EventType   string
	TicketID    string
	ActionType  ActionType
	Description string
	Payload     map[string]any
	OccurredAt  time.Time
	RecordedAt  time.Time
}
