package usecase

import (
	"context"
	"errors"
	"testing"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type wizardFixture struct {
	svc     WizardService
	booking *fakeBookingRepo
	outbox  *fakeOutboxRepo
	drafts  *fakeDraftRepo
	orders  *fakeOrderService
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()

	bookingRepo := &fakeBookingRepo{}
	outboxRepo := &fakeOutboxRepo{}
	draftRepo := newFakeDraftRepo()
	tourRepo := &fakeTourRepo{tours: []*entity.Tour{
		{
			Base:      entity.Base{ID: uuid.New()},
			Slug:      "morocco-explorer",
			Title:     "Morocco Explorer",
			BasePrice: 500,
			Published: true,
		},
		{
			Base:      entity.Base{ID: uuid.New()},
			Slug:      "hidden-tour",
			Title:     "Hidden Tour",
			BasePrice: 700,
			Published: false,
		},
	}}
	orders := &fakeOrderService{}

	repo := testRepository(bookingRepo, outboxRepo, tourRepo, &fakeContactRepo{}, draftRepo)
	booking := NewBookingService(repo, testConfig(), zap.NewNop())

	return &wizardFixture{
		svc:     NewWizardService(repo, booking, orders, zap.NewNop()),
		booking: bookingRepo,
		outbox:  outboxRepo,
		drafts:  draftRepo,
		orders:  orders,
	}
}

// advance walks a fresh draft to the payment step.
func (f *wizardFixture) advanceToPayment(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, &request.StartWizardRequest{TourSlug: "morocco-explorer"})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, draft.ID, &request.UpdateDraftRequest{
		TravelDate: strPtr("2030-05-01"),
		Guests:     intPtr(3),
	})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, draft.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, draft.ID, &request.UpdateDraftRequest{
		FirstName: strPtr("Amira"),
		LastName:  strPtr("Haddad"),
		Email:     strPtr("amira@example.com"),
	})
	require.NoError(t, err)
	cur, err := f.svc.Next(ctx, draft.ID)
	require.NoError(t, err)
	require.Equal(t, string(wizard.StepPayment), cur.Step)

	return draft.ID
}

func TestWizard_StartOnUnknownTour(t *testing.T) {
	f := newWizardFixture(t)

	_, err := f.svc.Start(context.Background(), &request.StartWizardRequest{TourSlug: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Unpublished tours are not bookable either.
	_, err = f.svc.Start(context.Background(), &request.StartWizardRequest{TourSlug: "hidden-tour"})
	require.Error(t, err)
}

func TestWizard_StartSetsPricing(t *testing.T) {
	f := newWizardFixture(t)

	draft, err := f.svc.Start(context.Background(), &request.StartWizardRequest{TourSlug: "morocco-explorer"})
	require.NoError(t, err)
	assert.Equal(t, string(wizard.StepDateGuests), draft.Step)
	assert.Equal(t, 500, draft.BasePrice)
	assert.Equal(t, 2, draft.Guests)
	assert.Equal(t, 500, draft.Total)
}

func TestWizard_NextBlockedWithoutTrip(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Start(ctx, &request.StartWizardRequest{TourSlug: "morocco-explorer"})
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, draft.ID)
	require.Error(t, err)
}

func TestWizard_BackPreservesContact(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.advanceToPayment(t)

	back, err := f.svc.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(wizard.StepContact), back.Step)
	assert.Equal(t, "Amira", back.FirstName)
	assert.Equal(t, "amira@example.com", back.Email)

	forward, err := f.svc.Next(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(wizard.StepPayment), forward.Step)
}

func TestWizard_FullFlowToConfirmed(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.advanceToPayment(t)

	order, err := f.svc.CreatePaymentOrder(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, order.OrderID)

	final, err := f.svc.CapturePayment(ctx, id, &request.CapturePaymentRequest{OrderID: order.OrderID})
	require.NoError(t, err)
	assert.Equal(t, string(wizard.StepConfirmed), final.Step)
	assert.NotEmpty(t, final.BookingID)

	// Exactly one booking and one ledger outbox row.
	require.Len(t, f.booking.bookings, 1)
	require.Len(t, f.outbox.entries, 1)
	b := f.booking.bookings[0]
	assert.Equal(t, final.BookingID, b.BookingID)
	assert.Equal(t, 3, b.Guests)
	// 3 guests bill as 2 pairs of the 500 base price.
	assert.Equal(t, "€1000", b.TotalEUR)
	assert.Equal(t, order.OrderID, b.PaymentReference)
}

func TestWizard_CaptureFailureStaysOnPayment(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.advanceToPayment(t)

	f.orders.captureErr = errors.New("gateway timeout")

	order, err := f.svc.CreatePaymentOrder(ctx, id)
	require.NoError(t, err)

	draft, err := f.svc.CapturePayment(ctx, id, &request.CapturePaymentRequest{OrderID: order.OrderID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment failed")
	assert.Equal(t, string(wizard.StepPayment), draft.Step)
	assert.Empty(t, f.booking.bookings)

	// Recovery: a later attempt with a fresh order succeeds.
	f.orders.captureErr = nil
	order2, err := f.svc.CreatePaymentOrder(ctx, id)
	require.NoError(t, err)
	final, err := f.svc.CapturePayment(ctx, id, &request.CapturePaymentRequest{OrderID: order2.OrderID})
	require.NoError(t, err)
	assert.Equal(t, string(wizard.StepConfirmed), final.Step)
	require.Len(t, f.booking.bookings, 1)
}

func TestWizard_DeclinedCaptureCreatesNothing(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.advanceToPayment(t)

	f.orders.status = "DECLINED"

	order, err := f.svc.CreatePaymentOrder(ctx, id)
	require.NoError(t, err)

	_, err = f.svc.CapturePayment(ctx, id, &request.CapturePaymentRequest{OrderID: order.OrderID})
	require.Error(t, err)
	assert.Empty(t, f.booking.bookings)
	assert.Empty(t, f.outbox.entries)
}

func TestWizard_CaptureWithoutOrder(t *testing.T) {
	f := newWizardFixture(t)
	id := f.advanceToPayment(t)

	_, err := f.svc.CapturePayment(context.Background(), id, &request.CapturePaymentRequest{OrderID: "ORDER-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active payment order")
}

func TestWizard_CloseDiscardsDraft(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.advanceToPayment(t)

	require.NoError(t, f.svc.Close(ctx, id))

	_, err := f.svc.Get(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWizard_ConfirmedIsTerminal(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.advanceToPayment(t)

	order, err := f.svc.CreatePaymentOrder(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.CapturePayment(ctx, id, &request.CapturePaymentRequest{OrderID: order.OrderID})
	require.NoError(t, err)

	_, err = f.svc.Back(ctx, id)
	require.Error(t, err)
	_, err = f.svc.Next(ctx, id)
	require.Error(t, err)
}
