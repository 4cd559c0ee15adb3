package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/payment"
	"tour-booking/internal/wizard"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WizardService interface {
	Start(ctx context.Context, req *request.StartWizardRequest) (*response.DraftResponse, error)
	Get(ctx context.Context, id string) (*response.DraftResponse, error)
	Update(ctx context.Context, id string, req *request.UpdateDraftRequest) (*response.DraftResponse, error)
	Next(ctx context.Context, id string) (*response.DraftResponse, error)
	Back(ctx context.Context, id string) (*response.DraftResponse, error)
	Close(ctx context.Context, id string) error

	CreatePaymentOrder(ctx context.Context, id string) (*response.PaymentOrderResponse, error)
	CapturePayment(ctx context.Context, id string, req *request.CapturePaymentRequest) (*response.DraftResponse, error)
}

type wizardService struct {
	repo    *repository.Repository
	booking BookingService
	orders  payment.OrderService
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*payment.CheckoutSession
	results  map[string]error // capture outcome per draft, consumed once
}

func NewWizardService(repo *repository.Repository, booking BookingService, orders payment.OrderService, log *zap.Logger) WizardService {
	return &wizardService{
		repo:     repo,
		booking:  booking,
		orders:   orders,
		log:      log.With(zap.String("service", "wizard")),
		sessions: make(map[string]*payment.CheckoutSession),
		results:  make(map[string]error),
	}
}

func (s *wizardService) Start(ctx context.Context, req *request.StartWizardRequest) (*response.DraftResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tour, err := s.repo.Tour.FindBySlug(ctx, req.TourSlug)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil || !tour.Published {
		return nil, fmt.Errorf("tour %s not found", req.TourSlug)
	}

	draft := wizard.NewDraft(uuid.NewString(), tour.Slug, tour.Title, tour.BasePrice)
	if err := s.repo.Draft.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("start wizard: %w", err)
	}

	s.log.Info("Wizard started",
		zap.String("draft_id", draft.ID),
		zap.String("tour_slug", tour.Slug),
	)

	resp := response.DraftToResponse(draft)
	return &resp, nil
}

func (s *wizardService) Get(ctx context.Context, id string) (*response.DraftResponse, error) {
	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.DraftToResponse(*draft)
	return &resp, nil
}

func (s *wizardService) Update(ctx context.Context, id string, req *request.UpdateDraftRequest) (*response.DraftResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	d := *draft

	// Merge partial updates into whole-group events so absent fields keep
	// their current values.
	if req.TravelDate != nil || req.Guests != nil {
		ev := wizard.SetTrip{TravelDate: d.TravelDate, Guests: d.Guests}
		if req.TravelDate != nil {
			ev.TravelDate = *req.TravelDate
		}
		if req.Guests != nil {
			ev.Guests = *req.Guests
		}
		if d, err = wizard.Apply(d, ev, time.Now()); err != nil {
			return nil, err
		}
	}

	if req.FirstName != nil || req.LastName != nil || req.Email != nil ||
		req.PhoneCountryCode != nil || req.PhoneLocal != nil || req.SpecialRequests != nil {
		ev := wizard.SetContact{Contact: d.Contact, SpecialRequests: d.SpecialRequests}
		if req.FirstName != nil {
			ev.Contact.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			ev.Contact.LastName = *req.LastName
		}
		if req.Email != nil {
			ev.Contact.Email = *req.Email
		}
		if req.PhoneCountryCode != nil {
			ev.Contact.PhoneCountryCode = *req.PhoneCountryCode
		}
		if req.PhoneLocal != nil {
			ev.Contact.PhoneLocal = *req.PhoneLocal
		}
		if req.SpecialRequests != nil {
			ev.SpecialRequests = *req.SpecialRequests
		}
		if d, err = wizard.Apply(d, ev, time.Now()); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Draft.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	resp := response.DraftToResponse(d)
	return &resp, nil
}

func (s *wizardService) Next(ctx context.Context, id string) (*response.DraftResponse, error) {
	return s.applyAndSave(ctx, id, wizard.Next{})
}

func (s *wizardService) Back(ctx context.Context, id string) (*response.DraftResponse, error) {
	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	// Leaving the payment step tears the checkout session down so a
	// capture finishing later cannot touch the draft.
	if draft.Step == wizard.StepPayment {
		s.closeSession(id)
	}

	d, err := wizard.Apply(*draft, wizard.Back{}, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Draft.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	resp := response.DraftToResponse(d)
	return &resp, nil
}

// Close dismisses the wizard: the draft and everything entered is discarded.
func (s *wizardService) Close(ctx context.Context, id string) error {
	s.closeSession(id)

	if err := s.repo.Draft.Delete(ctx, id); err != nil {
		return fmt.Errorf("close wizard: %w", err)
	}

	s.log.Info("Wizard closed", zap.String("draft_id", id))
	return nil
}

func (s *wizardService) CreatePaymentOrder(ctx context.Context, id string) (*response.PaymentOrderResponse, error) {
	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step != wizard.StepPayment {
		return nil, fmt.Errorf("cannot create payment order on step %s", draft.Step)
	}

	description := fmt.Sprintf("%s - %s", draft.TourName, draft.TravelDate)

	// The amount always comes from the draft's computed total.
	orderID, err := s.orders.CreateOrder(ctx, draft.Total(), description)
	if err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	// A fresh order replaces any previous session for this draft; the old
	// one is torn down first so it cannot deliver a late outcome.
	sess := payment.NewCheckoutSession(s.orders,
		func(reference string) { s.handleApproved(id, reference) },
		func(err error) { s.handleFailed(id, err) },
		s.log,
	)
	s.mu.Lock()
	if old := s.sessions[id]; old != nil {
		old.Close()
	}
	s.sessions[id] = sess
	delete(s.results, id)
	s.mu.Unlock()

	return &response.PaymentOrderResponse{OrderID: orderID}, nil
}

func (s *wizardService) CapturePayment(ctx context.Context, id string, req *request.CapturePaymentRequest) (*response.DraftResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Step != wizard.StepPayment {
		return nil, fmt.Errorf("cannot capture payment on step %s", draft.Step)
	}
	if draft.Submitting {
		return nil, fmt.Errorf("cannot capture: submission already in progress")
	}

	s.mu.Lock()
	sess := s.sessions[id]
	s.mu.Unlock()
	if sess == nil {
		return nil, fmt.Errorf("no active payment order for draft %s", id)
	}

	d := *draft
	d.Submitting = true
	if err := s.repo.Draft.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	// Approve runs the capture and, through the session callbacks, the
	// submission and the confirm transition. It is synchronous from the
	// caller's point of view but runs on a background context: once the
	// capture starts, a dropped connection must not abort it.
	sess.Approve(context.Background(), req.OrderID)

	s.mu.Lock()
	captureErr, decided := s.results[id]
	delete(s.results, id)
	s.mu.Unlock()

	final, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	if decided && captureErr != nil {
		// Still on the payment step; no automatic retry.
		resp := response.DraftToResponse(*final)
		return &resp, captureErr
	}

	resp := response.DraftToResponse(*final)
	return &resp, nil
}

// handleApproved runs after a successful capture. It deliberately uses a
// background context: once the charge is captured we commit to attempting
// persistence even if the originating request goes away.
func (s *wizardService) handleApproved(id, reference string) {
	ctx := context.Background()

	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		s.setResult(id, fmt.Errorf("booking submission failed after capture %s: %w", reference, err))
		return
	}

	resp, err := s.booking.SubmitBooking(ctx, &request.SubmitBookingRequest{
		TourName:         draft.TourName,
		TourSlug:         draft.TourSlug,
		TourDate:         draft.TravelDate,
		Guests:           draft.Guests,
		FirstName:        draft.Contact.FirstName,
		LastName:         draft.Contact.LastName,
		Email:            draft.Contact.Email,
		Phone:            draft.Contact.Phone(),
		Total:            draft.Total(),
		PaymentReference: reference,
		PaymentStatus:    entity.PaymentStatusCompleted,
		SpecialRequests:  draft.SpecialRequests,
	})
	if err != nil {
		// The charge is captured but the record is not durable. The wizard
		// stays on the payment step; recovery is an operator concern.
		s.log.Error("Submission failed after successful capture",
			zap.Error(err),
			zap.String("draft_id", id),
			zap.String("payment_reference", reference),
		)
		s.setResult(id, fmt.Errorf("booking submission failed after capture %s: %w", reference, err))
		s.clearSubmitting(ctx, id)
		return
	}

	d, err := wizard.Apply(*draft, wizard.Confirm{BookingID: resp.BookingID}, time.Now())
	if err != nil {
		s.setResult(id, err)
		s.clearSubmitting(ctx, id)
		return
	}
	if err := s.repo.Draft.Save(ctx, d); err != nil {
		s.setResult(id, fmt.Errorf("save confirmed draft: %w", err))
		return
	}

	s.closeSession(id)
	s.setResult(id, nil)
}

func (s *wizardService) handleFailed(id string, err error) {
	s.log.Warn("Payment capture failed",
		zap.Error(err),
		zap.String("draft_id", id),
	)
	s.setResult(id, fmt.Errorf("payment failed: %w", err))
	s.clearSubmitting(context.Background(), id)
}

// ==================== HELPERS ====================

func (s *wizardService) applyAndSave(ctx context.Context, id string, ev wizard.Event) (*response.DraftResponse, error) {
	draft, err := s.loadDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	d, err := wizard.Apply(*draft, ev, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Draft.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	resp := response.DraftToResponse(d)
	return &resp, nil
}

func (s *wizardService) loadDraft(ctx context.Context, id string) (*wizard.Draft, error) {
	draft, err := s.repo.Draft.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find draft: %w", err)
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	return draft, nil
}

func (s *wizardService) closeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.sessions[id]; sess != nil {
		sess.Close()
		delete(s.sessions, id)
	}
}

func (s *wizardService) setResult(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = err
}

func (s *wizardService) clearSubmitting(ctx context.Context, id string) {
	draft, err := s.repo.Draft.Find(ctx, id)
	if err != nil || draft == nil {
		return
	}
	draft.Submitting = false
	if err := s.repo.Draft.Save(ctx, *draft); err != nil {
		s.log.Error("Failed to clear submitting flag",
			zap.Error(err),
			zap.String("draft_id", id),
		)
	}
}
