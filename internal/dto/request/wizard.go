package request

type StartWizardRequest struct {
	TourSlug string `json:"tour_slug" validate:"required"`
}

// UpdateDraftRequest carries partial field updates; absent fields are left
// untouched so going back and forth never loses entered data.
type UpdateDraftRequest struct {
	TravelDate       *string `json:"travel_date,omitempty"`
	Guests           *int    `json:"guests,omitempty" validate:"omitempty,gte=1"`
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneCountryCode *string `json:"phone_country_code,omitempty"`
	PhoneLocal       *string `json:"phone_local,omitempty"`
	SpecialRequests  *string `json:"special_requests,omitempty"`
}

type CapturePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}
