package payment

import (
	"context"
	"fmt"
	"sync"

	"tour-booking/internal/data/entity"

	"go.uber.org/zap"
)

// CheckoutSession binds one draft's payment step to the provider. The
// provider's approval arrives asynchronously; the session forwards the
// capture outcome to its callbacks only while it is still open, so a
// callback landing after Close can never mutate wizard state. A boolean
// in-flight flag is the sole double-submission guard.
type CheckoutSession struct {
	mu       sync.Mutex
	closed   bool
	inFlight bool

	orders    OrderService
	onSuccess func(reference string)
	onError   func(err error)
	log       *zap.Logger
}

func NewCheckoutSession(orders OrderService, onSuccess func(string), onError func(error), log *zap.Logger) *CheckoutSession {
	return &CheckoutSession{
		orders:    orders,
		onSuccess: onSuccess,
		onError:   onError,
		log:       log.With(zap.String("component", "checkout_session")),
	}
}

// Close tears the session down. Any capture outcome arriving afterwards is
// dropped. Safe to call more than once.
func (s *CheckoutSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the session has been torn down.
func (s *CheckoutSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Approve handles the provider's approval callback for the given order:
// it captures the charge and forwards the outcome. A second approval while
// one is in flight is dropped, as is any outcome after Close.
func (s *CheckoutSession) Approve(ctx context.Context, orderID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("Dropping approval on closed session", zap.String("order_id", orderID))
		return
	}
	if s.inFlight {
		s.mu.Unlock()
		s.log.Warn("Dropping duplicate approval", zap.String("order_id", orderID))
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	capture, err := s.orders.CaptureOrder(ctx, orderID)

	s.mu.Lock()
	s.inFlight = false
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("Suppressing capture outcome after session close",
			zap.String("order_id", orderID))
		return
	}
	s.mu.Unlock()

	if err != nil {
		s.onError(err)
		return
	}
	if capture.Status != entity.PaymentStatusCompleted {
		s.onError(fmt.Errorf("payment not completed: provider status %s", capture.Status))
		return
	}

	s.onSuccess(capture.OrderID)
}
