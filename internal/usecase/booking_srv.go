package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// SubmitBooking is the submission gateway: it persists a booking for a
	// captured payment and queues the ledger append + notifications.
	SubmitBooking(ctx context.Context, req *request.SubmitBookingRequest) (*response.SubmitBookingResponse, error)

	// Operator endpoints
	ListBookings(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error)
	ListOutbox(ctx context.Context, status string, page, perPage int) ([]response.OutboxEntryResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) SubmitBooking(ctx context.Context, req *request.SubmitBookingRequest) (*response.SubmitBookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Persist only captured payments. Anything else is rejected with no
	// side effects: no record, no ledger row, no emails.
	if req.PaymentStatus != entity.PaymentStatusCompleted {
		s.log.Warn("Rejected booking with non-completed payment",
			zap.String("payment_status", req.PaymentStatus),
			zap.String("payment_reference", req.PaymentReference),
		)
		return nil, fmt.Errorf("payment not completed: status %s", req.PaymentStatus)
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		BookingID:        utils.GenerateBookingID(),
		Source:           s.config.Booking.SourceTag,
		Status:           entity.BookingStatusConfirmed,
		TourName:         req.TourName,
		TourSlug:         req.TourSlug,
		TourDate:         req.TourDate,
		Guests:           req.Guests,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		TotalEUR:         utils.FormatEUR(req.Total),
		PaymentReference: req.PaymentReference,
		SpecialRequests:  req.SpecialRequests,
	}

	// The money is already captured, so the booking row is the durability
	// anchor. Failing here is the one case we surface to the caller.
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to persist booking after capture",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
			zap.String("payment_reference", booking.PaymentReference),
		)
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	// Ledger append and emails run from the outbox worker. An enqueue
	// failure is logged but never turns a captured payment into a user
	// facing error; the booking row remains recoverable by an operator.
	outboxEntry := &entity.LedgerOutbox{
		ID:        uuid.New(),
		BookingID: booking.ID,
		Status:    entity.OutboxStatusPending,
		CreatedAt: now,
	}
	if err := s.repo.Outbox.Create(ctx, outboxEntry); err != nil {
		s.log.Error("Failed to enqueue ledger append - booking persisted, ledger row missing",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
		)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.BookingID),
		zap.String("tour_slug", booking.TourSlug),
		zap.Int("guests", booking.Guests),
		zap.String("total", booking.TotalEUR),
		zap.String("payment_reference", booking.PaymentReference),
	)

	return &response.SubmitBookingResponse{BookingID: booking.BookingID}, nil
}

// ==================== OPERATOR METHODS ====================

func (s *bookingService) ListBookings(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	offset := utils.CalculateOffset(page, perPage)

	bookings, err := s.repo.Booking.FindAll(ctx, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return &response.PaginatedResponse[response.BookingResponse]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}, nil
}

func (s *bookingService) ListOutbox(ctx context.Context, status string, page, perPage int) ([]response.OutboxEntryResponse, error) {
	switch entity.OutboxStatus(status) {
	case entity.OutboxStatusPending, entity.OutboxStatusAppended, entity.OutboxStatusFailed:
	default:
		return nil, fmt.Errorf("invalid outbox status %q", status)
	}

	offset := utils.CalculateOffset(page, perPage)
	entries, err := s.repo.Outbox.FindByStatus(ctx, entity.OutboxStatus(status), perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}

	items := make([]response.OutboxEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = response.OutboxToResponse(e)
	}

	return items, nil
}
