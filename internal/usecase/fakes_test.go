package usecase

import (
	"context"
	"fmt"
	"sync"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/payment"
	"tour-booking/internal/wizard"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  []*entity.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.bookings) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.bookings) {
		end = len(f.bookings)
	}
	return f.bookings[offset:end], nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

type fakeOutboxRepo struct {
	mu        sync.Mutex
	entries   []*entity.LedgerOutbox
	createErr error
}

func (f *fakeOutboxRepo) Create(ctx context.Context, e *entity.LedgerOutbox) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeOutboxRepo) FindPending(ctx context.Context, limit int) ([]*entity.LedgerOutbox, error) {
	return f.FindByStatus(ctx, entity.OutboxStatusPending, limit, 0)
}

func (f *fakeOutboxRepo) FindByStatus(ctx context.Context, status entity.OutboxStatus, limit, offset int) ([]*entity.LedgerOutbox, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.LedgerOutbox
	for _, e := range f.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	if offset+limit < len(out) {
		out = out[offset : offset+limit]
	} else {
		out = out[offset:]
	}
	return out, nil
}

func (f *fakeOutboxRepo) MarkAppended(ctx context.Context, id uuid.UUID, attempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			e.Status = entity.OutboxStatusAppended
			e.Attempts = attempts
		}
	}
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			e.Status = entity.OutboxStatusFailed
			e.Attempts = attempts
			e.LastError = lastError
		}
	}
	return nil
}

func (f *fakeOutboxRepo) RecordAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			e.Attempts = attempts
			e.LastError = lastError
		}
	}
	return nil
}

func (f *fakeOutboxRepo) MarkEmailsSent(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			e.EmailsSent = true
		}
	}
	return nil
}

type fakeTourRepo struct {
	tours []*entity.Tour
}

func (f *fakeTourRepo) FindAllPublished(ctx context.Context) ([]*entity.Tour, error) {
	var out []*entity.Tour
	for _, t := range f.tours {
		if t.Published {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) FindBySlug(ctx context.Context, slug string) (*entity.Tour, error) {
	for _, t := range f.tours {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts []*entity.Contact
}

func (f *fakeContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, c)
	return nil
}

func (f *fakeContactRepo) ExistsNewsletterEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.contacts {
		if c.Kind == entity.ContactKindNewsletter && c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]wizard.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]wizard.Draft)}
}

func (f *fakeDraftRepo) Save(ctx context.Context, d wizard.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts[d.ID] = d
	return nil
}

func (f *fakeDraftRepo) Find(ctx context.Context, id string) (*wizard.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeDraftRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, id)
	return nil
}

// fakeOrderService fabricates order IDs and plays back a scripted capture.
type fakeOrderService struct {
	mu         sync.Mutex
	created    int
	captured   []string
	captureErr error
	status     string
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, value int, description string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return fmt.Sprintf("ORDER-%d", f.created), nil
}

func (f *fakeOrderService) CaptureOrder(ctx context.Context, orderID string) (*payment.Capture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	f.captured = append(f.captured, orderID)
	status := f.status
	if status == "" {
		status = entity.PaymentStatusCompleted
	}
	return &payment.Capture{OrderID: orderID, Status: status}, nil
}

type fakeMailer struct {
	mu       sync.Mutex
	guest    []string
	operator []string
	contact  []string
}

func (f *fakeMailer) SendGuestConfirmation(ctx context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guest = append(f.guest, b.BookingID)
	return nil
}

func (f *fakeMailer) SendOperatorAlert(ctx context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operator = append(f.operator, b.BookingID)
	return nil
}

func (f *fakeMailer) SendContactNotification(ctx context.Context, c *entity.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contact = append(f.contact, c.Email)
	return nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			SourceTag:       "Website",
			DraftTTLMinutes: 30,
			MinGuests:       2,
		},
	}
}

func testRepository(booking *fakeBookingRepo, outbox *fakeOutboxRepo, tour *fakeTourRepo, contact *fakeContactRepo, draft *fakeDraftRepo) *repository.Repository {
	return &repository.Repository{
		Tour:    tour,
		Booking: booking,
		Outbox:  outbox,
		Contact: contact,
		Draft:   draft,
	}
}
