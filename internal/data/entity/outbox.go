package entity

import (
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending  OutboxStatus = "pending"
	OutboxStatusAppended OutboxStatus = "appended"
	OutboxStatusFailed   OutboxStatus = "failed"
)

// LedgerOutbox tracks the ledger append for one booking. The booking row in
// Postgres is the durable record; the outbox exists so a captured payment
// whose spreadsheet append failed is retried instead of silently lost.
type LedgerOutbox struct {
	ID          uuid.UUID    `db:"id"`
	BookingID   uuid.UUID    `db:"booking_ref"` // bookings.id
	Status      OutboxStatus `db:"status"`
	Attempts    int          `db:"attempts"`
	LastError   string       `db:"last_error"`
	EmailsSent  bool         `db:"emails_sent"`
	CreatedAt   time.Time    `db:"created_at"`
	ProcessedAt *time.Time   `db:"processed_at"`
}
