package response

import (
	"tour-booking/internal/pricing"
	"tour-booking/internal/wizard"
)

type DraftResponse struct {
	ID               string `json:"id"`
	TourSlug         string `json:"tour_slug"`
	TourName         string `json:"tour_name"`
	BasePrice        int    `json:"base_price"`
	TravelDate       string `json:"travel_date,omitempty"`
	Guests           int    `json:"guests"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Email            string `json:"email,omitempty"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	PhoneLocal       string `json:"phone_local,omitempty"`
	SpecialRequests  string `json:"special_requests,omitempty"`
	Step             string `json:"step"`
	BillableUnits    int    `json:"billable_units"`
	Total            int    `json:"total"`
	BookingID        string `json:"booking_id,omitempty"`
}

func DraftToResponse(d wizard.Draft) DraftResponse {
	return DraftResponse{
		ID:               d.ID,
		TourSlug:         d.TourSlug,
		TourName:         d.TourName,
		BasePrice:        d.BasePrice,
		TravelDate:       d.TravelDate,
		Guests:           d.Guests,
		FirstName:        d.Contact.FirstName,
		LastName:         d.Contact.LastName,
		Email:            d.Contact.Email,
		PhoneCountryCode: d.Contact.PhoneCountryCode,
		PhoneLocal:       d.Contact.PhoneLocal,
		SpecialRequests:  d.SpecialRequests,
		Step:             string(d.Step),
		BillableUnits:    pricing.BillableUnits(d.Guests),
		Total:            d.Total(),
		BookingID:        d.BookingID,
	}
}

type PaymentOrderResponse struct {
	OrderID string `json:"order_id"`
}
