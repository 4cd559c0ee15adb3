package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type SubmitBookingResponse struct {
	BookingID string `json:"booking_id"`
}

type BookingResponse struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"booking_id"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	TourName         string    `json:"tour_name"`
	TourSlug         string    `json:"tour_slug"`
	TourDate         string    `json:"tour_date"`
	Guests           int       `json:"guests"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	TotalEUR         string    `json:"total_eur"`
	PaymentReference string    `json:"payment_reference"`
	SpecialRequests  string    `json:"special_requests,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID.String(),
		BookingID:        b.BookingID,
		Source:           b.Source,
		Status:           b.Status,
		TourName:         b.TourName,
		TourSlug:         b.TourSlug,
		TourDate:         b.TourDate,
		Guests:           b.Guests,
		FirstName:        b.FirstName,
		LastName:         b.LastName,
		Email:            b.Email,
		Phone:            b.Phone,
		TotalEUR:         b.TotalEUR,
		PaymentReference: b.PaymentReference,
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt,
	}
}

type OutboxEntryResponse struct {
	ID          string     `json:"id"`
	BookingRef  string     `json:"booking_ref"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	LastError   string     `json:"last_error,omitempty"`
	EmailsSent  bool       `json:"emails_sent"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func OutboxToResponse(e *entity.LedgerOutbox) OutboxEntryResponse {
	return OutboxEntryResponse{
		ID:          e.ID.String(),
		BookingRef:  e.BookingID.String(),
		Status:      string(e.Status),
		Attempts:    e.Attempts,
		LastError:   e.LastError,
		EmailsSent:  e.EmailsSent,
		CreatedAt:   e.CreatedAt,
		ProcessedAt: e.ProcessedAt,
	}
}
