package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func (m *memBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return m.bookings[id], nil
}

func (m *memBookingRepo) FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	for _, b := range m.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(m.bookings)), nil
}

type memOutboxRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.LedgerOutbox
}

func (m *memOutboxRepo) Create(ctx context.Context, e *entity.LedgerOutbox) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

func (m *memOutboxRepo) FindPending(ctx context.Context, limit int) ([]*entity.LedgerOutbox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.LedgerOutbox
	for _, e := range m.entries {
		if e.Status == entity.OutboxStatusPending {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memOutboxRepo) FindByStatus(ctx context.Context, status entity.OutboxStatus, limit, offset int) ([]*entity.LedgerOutbox, error) {
	return nil, nil
}

func (m *memOutboxRepo) MarkAppended(ctx context.Context, id uuid.UUID, attempts int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[id]
	e.Status = entity.OutboxStatusAppended
	e.Attempts = attempts
	e.LastError = ""
	now := time.Now()
	e.ProcessedAt = &now
	return nil
}

func (m *memOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[id]
	e.Status = entity.OutboxStatusFailed
	e.Attempts = attempts
	e.LastError = lastError
	return nil
}

func (m *memOutboxRepo) RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[id]
	e.Attempts = attempts
	e.LastError = lastError
	return nil
}

func (m *memOutboxRepo) MarkEmailsSent(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id].EmailsSent = true
	return nil
}

// fakeLedger fails the first failUntil append calls, then succeeds.
type fakeLedger struct {
	mu        sync.Mutex
	calls     int
	failUntil int
	rows      []string
}

func (f *fakeLedger) AppendBooking(ctx context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failUntil {
		return errors.New("googleapi: Error 503: backend unavailable")
	}
	f.rows = append(f.rows, b.BookingID)
	return nil
}

type captureMailer struct {
	mu       sync.Mutex
	guest    []string
	operator []string
	guestErr error
}

func (c *captureMailer) SendGuestConfirmation(ctx context.Context, b *entity.Booking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.guestErr != nil {
		return c.guestErr
	}
	c.guest = append(c.guest, b.BookingID)
	return nil
}

func (c *captureMailer) SendOperatorAlert(ctx context.Context, b *entity.Booking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operator = append(c.operator, b.BookingID)
	return nil
}

func (c *captureMailer) SendContactNotification(ctx context.Context, contact *entity.Contact) error {
	return nil
}

type workerFixture struct {
	worker   *Worker
	bookings *memBookingRepo
	outbox   *memOutboxRepo
	ledger   *fakeLedger
	mailer   *captureMailer
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()

	bookings := &memBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
	outboxRepo := &memOutboxRepo{entries: make(map[uuid.UUID]*entity.LedgerOutbox)}
	lg := &fakeLedger{}
	mail := &captureMailer{}

	repo := &repository.Repository{Booking: bookings, Outbox: outboxRepo}
	worker := NewWorker(repo, lg, mail, zap.NewNop())
	// No sleeping between attempts in tests.
	worker.backoff = func() retry.Backoff {
		return retry.WithMaxRetries(3, retry.BackoffFunc(func() (time.Duration, bool) {
			return 0, false
		}))
	}

	return &workerFixture{worker: worker, bookings: bookings, outbox: outboxRepo, ledger: lg, mailer: mail}
}

func (f *workerFixture) enqueue(t *testing.T, attempts int) (*entity.Booking, *entity.LedgerOutbox) {
	t.Helper()

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		BookingID:  "BK-20260710-104500-0042",
		Source:     "Website",
		Status:     entity.BookingStatusConfirmed,
		TourName:   "Morocco Explorer",
		Email:      "amira@example.com",
	}
	require.NoError(t, f.bookings.Create(context.Background(), booking))

	entry := &entity.LedgerOutbox{
		ID:        uuid.New(),
		BookingID: booking.ID,
		Status:    entity.OutboxStatusPending,
		Attempts:  attempts,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.outbox.Create(context.Background(), entry))
	return booking, entry
}

func TestWorker_AppendsAndSendsEmails(t *testing.T) {
	f := newWorkerFixture(t)
	booking, entry := f.enqueue(t, 0)

	f.worker.RunOnce(context.Background())

	assert.Equal(t, []string{booking.BookingID}, f.ledger.rows)
	assert.Equal(t, entity.OutboxStatusAppended, entry.Status)
	assert.True(t, entry.EmailsSent)
	assert.Equal(t, []string{booking.BookingID}, f.mailer.guest)
	assert.Equal(t, []string{booking.BookingID}, f.mailer.operator)
}

func TestWorker_RetriesTransientAppendFailure(t *testing.T) {
	f := newWorkerFixture(t)
	booking, entry := f.enqueue(t, 0)
	f.ledger.failUntil = 2

	f.worker.RunOnce(context.Background())

	// Third in-pass attempt lands the row; one row, one email pair.
	assert.Equal(t, []string{booking.BookingID}, f.ledger.rows)
	assert.Equal(t, entity.OutboxStatusAppended, entry.Status)
	assert.Equal(t, 3, entry.Attempts)
	assert.Len(t, f.mailer.guest, 1)
}

func TestWorker_ParksEntryAfterMaxAttempts(t *testing.T) {
	f := newWorkerFixture(t)
	_, entry := f.enqueue(t, maxAttempts-1)
	f.ledger.failUntil = 100

	f.worker.RunOnce(context.Background())

	assert.Equal(t, entity.OutboxStatusFailed, entry.Status)
	assert.Contains(t, entry.LastError, "503")
	assert.Empty(t, f.mailer.guest)
}

func TestWorker_KeepsPendingBelowMaxAttempts(t *testing.T) {
	f := newWorkerFixture(t)
	_, entry := f.enqueue(t, 0)
	f.ledger.failUntil = 100

	f.worker.RunOnce(context.Background())

	assert.Equal(t, entity.OutboxStatusPending, entry.Status)
	assert.Equal(t, 4, entry.Attempts)
	assert.NotEmpty(t, entry.LastError)
}

func TestWorker_EmailFailureLeavesEmailsUnsent(t *testing.T) {
	f := newWorkerFixture(t)
	booking, entry := f.enqueue(t, 0)
	f.mailer.guestErr = errors.New("resend: 429")

	f.worker.RunOnce(context.Background())

	// The row is appended exactly once even though the emails failed.
	assert.Equal(t, []string{booking.BookingID}, f.ledger.rows)
	assert.Equal(t, entity.OutboxStatusAppended, entry.Status)
	assert.False(t, entry.EmailsSent)
}

func TestWorker_MissingBookingParksEntry(t *testing.T) {
	f := newWorkerFixture(t)

	entry := &entity.LedgerOutbox{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		Status:    entity.OutboxStatusPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.outbox.Create(context.Background(), entry))

	f.worker.RunOnce(context.Background())

	assert.Equal(t, entity.OutboxStatusFailed, entry.Status)
	assert.Empty(t, f.ledger.rows)
}
