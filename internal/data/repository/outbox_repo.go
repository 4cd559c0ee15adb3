package repository

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OutboxRepository interface {
	Create(ctx context.Context, entry *entity.LedgerOutbox) error
	FindPending(ctx context.Context, limit int) ([]*entity.LedgerOutbox, error)
	FindByStatus(ctx context.Context, status entity.OutboxStatus, limit, offset int) ([]*entity.LedgerOutbox, error)
	MarkAppended(ctx context.Context, id uuid.UUID, attempts int) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error
	RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error
	MarkEmailsSent(ctx context.Context, id uuid.UUID) error
}

type outboxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOutboxRepository(db database.PgxIface, log *zap.Logger) OutboxRepository {
	return &outboxRepository{
		db:  db,
		log: log.With(zap.String("repository", "outbox")),
	}
}

const outboxColumns = `id, booking_ref, status, attempts, last_error, emails_sent, created_at, processed_at`

func (r *outboxRepository) Create(ctx context.Context, entry *entity.LedgerOutbox) error {
	query := `
		INSERT INTO ledger_outbox (id, booking_ref, status, attempts, last_error, emails_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.BookingID,
		entry.Status,
		entry.Attempts,
		entry.LastError,
		entry.EmailsSent,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create outbox entry",
			zap.Error(err),
			zap.String("booking_ref", entry.BookingID.String()),
		)
		return fmt.Errorf("create outbox entry: %w", err)
	}

	return nil
}

func scanOutbox(row pgx.Row) (*entity.LedgerOutbox, error) {
	var e entity.LedgerOutbox
	err := row.Scan(
		&e.ID,
		&e.BookingID,
		&e.Status,
		&e.Attempts,
		&e.LastError,
		&e.EmailsSent,
		&e.CreatedAt,
		&e.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *outboxRepository) FindPending(ctx context.Context, limit int) ([]*entity.LedgerOutbox, error) {
	query := `
		SELECT ` + outboxColumns + `
		FROM ledger_outbox
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, entity.OutboxStatusPending, limit)
	if err != nil {
		r.log.Error("Failed to list pending outbox entries", zap.Error(err))
		return nil, fmt.Errorf("list pending outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.LedgerOutbox
	for rows.Next() {
		entry, err := scanOutbox(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *outboxRepository) FindByStatus(ctx context.Context, status entity.OutboxStatus, limit, offset int) ([]*entity.LedgerOutbox, error) {
	query := `
		SELECT ` + outboxColumns + `
		FROM ledger_outbox
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list outbox entries by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("list outbox entries by status %s: %w", status, err)
	}
	defer rows.Close()

	var entries []*entity.LedgerOutbox
	for rows.Next() {
		entry, err := scanOutbox(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *outboxRepository) MarkAppended(ctx context.Context, id uuid.UUID, attempts int) error {
	query := `
		UPDATE ledger_outbox
		SET status = $1, attempts = $2, last_error = '', processed_at = $3
		WHERE id = $4
	`

	_, err := r.db.Exec(ctx, query, entity.OutboxStatusAppended, attempts, time.Now(), id)
	if err != nil {
		r.log.Error("Failed to mark outbox entry appended",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("mark outbox entry %s appended: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	query := `
		UPDATE ledger_outbox
		SET status = $1, attempts = $2, last_error = $3, processed_at = $4
		WHERE id = $5
	`

	_, err := r.db.Exec(ctx, query, entity.OutboxStatusFailed, attempts, lastError, time.Now(), id)
	if err != nil {
		r.log.Error("Failed to mark outbox entry failed",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("mark outbox entry %s failed: %w", id.String(), err)
	}

	return nil
}

// RecordAttempt bumps the attempt counter on a still-pending entry so the
// next poll retries it.
func (r *outboxRepository) RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	query := `
		UPDATE ledger_outbox
		SET attempts = $1, last_error = $2
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, attempts, lastError, id)
	if err != nil {
		r.log.Error("Failed to record outbox attempt",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("record outbox attempt for %s: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) MarkEmailsSent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE ledger_outbox SET emails_sent = TRUE WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark outbox emails sent",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("mark outbox entry %s emails sent: %w", id.String(), err)
	}

	return nil
}
