package adaptor

import (
	"tour-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Tour    *TourHandler
	Wizard  *WizardHandler
	Booking *BookingHandler
	Contact *ContactHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Tour:    NewTourHandler(service.Tour, log),
		Wizard:  NewWizardHandler(service.Wizard, log),
		Booking: NewBookingHandler(service.Booking, log),
		Contact: NewContactHandler(service.Contact, log),
	}
}
