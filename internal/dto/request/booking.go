package request

// SubmitBookingRequest is the payload of the submission endpoint: a finished
// draft plus the provider's capture outcome.
type SubmitBookingRequest struct {
	TourName         string `json:"tour_name" validate:"required"`
	TourSlug         string `json:"tour_slug"`
	TourDate         string `json:"tour_date" validate:"required"`
	Guests           int    `json:"guests" validate:"required,gte=1"`
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	Total            int    `json:"total" validate:"gte=0"`
	PaymentReference string `json:"payment_reference" validate:"required"`
	PaymentStatus    string `json:"payment_status" validate:"required"`
	SpecialRequests  string `json:"special_requests"`
}
