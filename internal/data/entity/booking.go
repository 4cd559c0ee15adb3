package entity

// PaymentStatusCompleted is the only provider status the gateway accepts.
const PaymentStatusCompleted = "COMPLETED"

// BookingStatusConfirmed is the only status ever written; a booking record
// exists exactly when a payment was captured. Cancellation and refunds are
// handled outside this system.
const BookingStatusConfirmed = "confirmed"

// Booking is the record persisted once per successful payment capture.
// It is never updated or deleted here; after the ledger append the external
// store owns it.
type Booking struct {
	BaseSimple
	BookingID        string `db:"booking_id"`
	Source           string `db:"source"`
	Status           string `db:"status"`
	TourName         string `db:"tour_name"`
	TourSlug         string `db:"tour_slug"`
	TourDate         string `db:"tour_date"`
	Guests           int    `db:"guests"`
	FirstName        string `db:"first_name"`
	LastName         string `db:"last_name"`
	Email            string `db:"email"`
	Phone            string `db:"phone"`
	TotalEUR         string `db:"total_eur"`
	PaymentReference string `db:"payment_reference"`
	SpecialRequests  string `db:"special_requests"`
}
