package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validSubmitRequest() *request.SubmitBookingRequest {
	return &request.SubmitBookingRequest{
		TourName:         "Morocco Explorer",
		TourSlug:         "morocco-explorer",
		TourDate:         "2026-07-10",
		Guests:           3,
		FirstName:        "Amira",
		LastName:         "Haddad",
		Email:            "amira@example.com",
		Phone:            "+212 600123456",
		Total:            1000,
		PaymentReference: "5O190127TN364715T",
		PaymentStatus:    entity.PaymentStatusCompleted,
		SpecialRequests:  "vegetarian meals",
	}
}

func TestSubmitBooking_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	outboxRepo := &fakeOutboxRepo{}
	svc := NewBookingService(testRepository(bookingRepo, outboxRepo, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	resp, err := svc.SubmitBooking(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, strings.HasPrefix(resp.BookingID, "BK-"))

	require.Len(t, bookingRepo.bookings, 1)
	b := bookingRepo.bookings[0]
	assert.Equal(t, resp.BookingID, b.BookingID)
	assert.Equal(t, "Website", b.Source)
	assert.Equal(t, entity.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "€1000", b.TotalEUR)
	assert.Equal(t, "5O190127TN364715T", b.PaymentReference)

	require.Len(t, outboxRepo.entries, 1)
	assert.Equal(t, b.ID, outboxRepo.entries[0].BookingID)
	assert.Equal(t, entity.OutboxStatusPending, outboxRepo.entries[0].Status)
}

func TestSubmitBooking_RejectsNonCompletedPayment(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	outboxRepo := &fakeOutboxRepo{}
	svc := NewBookingService(testRepository(bookingRepo, outboxRepo, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	req := validSubmitRequest()
	req.PaymentStatus = "DECLINED"

	resp, err := svc.SubmitBooking(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "payment not completed")

	// No side effects for a rejected payment.
	assert.Empty(t, bookingRepo.bookings)
	assert.Empty(t, outboxRepo.entries)
}

func TestSubmitBooking_ValidationFailure(t *testing.T) {
	svc := NewBookingService(testRepository(&fakeBookingRepo{}, &fakeOutboxRepo{}, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	req := validSubmitRequest()
	req.Email = "not-an-email"

	_, err := svc.SubmitBooking(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestSubmitBooking_PersistFailureSurfaced(t *testing.T) {
	bookingRepo := &fakeBookingRepo{createErr: errors.New("connection refused")}
	outboxRepo := &fakeOutboxRepo{}
	svc := NewBookingService(testRepository(bookingRepo, outboxRepo, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	_, err := svc.SubmitBooking(context.Background(), validSubmitRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist booking")
	assert.Empty(t, outboxRepo.entries)
}

func TestSubmitBooking_OutboxFailureStillSucceeds(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	outboxRepo := &fakeOutboxRepo{createErr: errors.New("table missing")}
	svc := NewBookingService(testRepository(bookingRepo, outboxRepo, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	resp, err := svc.SubmitBooking(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingID)
	// The booking row is the durability anchor and is still there.
	assert.Len(t, bookingRepo.bookings, 1)
}

func TestListBookings_Paginated(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	svc := NewBookingService(testRepository(bookingRepo, &fakeOutboxRepo{}, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := svc.SubmitBooking(context.Background(), validSubmitRequest())
		require.NoError(t, err)
	}

	page, err := svc.ListBookings(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListOutbox_InvalidStatus(t *testing.T) {
	svc := NewBookingService(testRepository(&fakeBookingRepo{}, &fakeOutboxRepo{}, &fakeTourRepo{}, &fakeContactRepo{}, newFakeDraftRepo()), testConfig(), zap.NewNop())

	_, err := svc.ListOutbox(context.Background(), "bogus", 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid outbox status")
}
