// Package outbox drains the ledger outbox: every pending entry gets its
// booking appended to the spreadsheet ledger and, after a successful
// append, the confirmation emails sent.
package outbox

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/ledger"
	"tour-booking/internal/mailer"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 30 * time.Second
	DefaultBatchSize    = 20

	// maxAttempts counts attempts across polls. Past it the entry is
	// parked as failed for the operator endpoints to surface.
	maxAttempts = 8
)

type Worker struct {
	repo     *repository.Repository
	ledger   ledger.Ledger
	mail     mailer.Mailer
	interval time.Duration
	batch    int
	backoff  func() retry.Backoff
	log      *zap.Logger
}

func NewWorker(repo *repository.Repository, lg ledger.Ledger, mail mailer.Mailer, log *zap.Logger) *Worker {
	return &Worker{
		repo:     repo,
		ledger:   lg,
		mail:     mail,
		interval: DefaultPollInterval,
		batch:    DefaultBatchSize,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(3, retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second)))
		},
		log: log.With(zap.String("worker", "ledger_outbox")),
	}
}

// Start polls until ctx is cancelled. It runs one immediate pass so entries
// queued before startup are not stuck waiting a full interval.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("Ledger outbox worker started", zap.Duration("interval", w.interval))

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Ledger outbox worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce drains one batch of pending entries.
func (w *Worker) RunOnce(ctx context.Context) {
	entries, err := w.repo.Outbox.FindPending(ctx, w.batch)
	if err != nil {
		w.log.Error("Failed to load pending outbox entries", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		w.process(ctx, entry)
	}
}

func (w *Worker) process(ctx context.Context, entry *entity.LedgerOutbox) {
	booking, err := w.repo.Booking.FindByID(ctx, entry.BookingID)
	if err != nil {
		w.log.Error("Failed to load booking for outbox entry",
			zap.Error(err),
			zap.String("outbox_id", entry.ID.String()),
		)
		return
	}
	if booking == nil {
		// Nothing to append and nothing to recover; park the entry.
		_ = w.repo.Outbox.MarkFailed(ctx, entry.ID, entry.Attempts+1, "booking row missing")
		return
	}

	attempts := entry.Attempts
	appendErr := retry.Do(ctx, w.backoff(), func(ctx context.Context) error {
		attempts++
		if err := w.ledger.AppendBooking(ctx, booking); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	if appendErr != nil {
		w.log.Warn("Ledger append failed",
			zap.Error(appendErr),
			zap.String("booking_id", booking.BookingID),
			zap.Int("attempts", attempts),
		)
		if attempts >= maxAttempts {
			_ = w.repo.Outbox.MarkFailed(ctx, entry.ID, attempts, appendErr.Error())
		} else {
			_ = w.repo.Outbox.RecordAttempt(ctx, entry.ID, attempts, appendErr.Error())
		}
		return
	}

	if err := w.repo.Outbox.MarkAppended(ctx, entry.ID, attempts); err != nil {
		// The append went through; skip the emails rather than risk
		// sending them again when the entry is re-read as pending.
		return
	}

	w.log.Info("Booking appended to ledger",
		zap.String("booking_id", booking.BookingID),
		zap.Int("attempts", attempts),
	)

	if err := w.sendEmails(ctx, booking); err != nil {
		w.log.Error("Confirmation emails incomplete",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
		)
		return
	}
	_ = w.repo.Outbox.MarkEmailsSent(ctx, entry.ID)
}

func (w *Worker) sendEmails(ctx context.Context, booking *entity.Booking) error {
	if err := w.mail.SendGuestConfirmation(ctx, booking); err != nil {
		return fmt.Errorf("guest confirmation: %w", err)
	}
	if err := w.mail.SendOperatorAlert(ctx, booking); err != nil {
		return fmt.Errorf("operator alert: %w", err)
	}
	return nil
}
