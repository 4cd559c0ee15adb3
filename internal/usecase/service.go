package usecase

import (
	"tour-booking/internal/data/repository"
	"tour-booking/internal/mailer"
	"tour-booking/internal/payment"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Tour    TourService
	Booking BookingService
	Wizard  WizardService
	Contact ContactService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	orders payment.OrderService,
	mail mailer.Mailer,
	log *zap.Logger,
) *Service {
	booking := NewBookingService(repo, config, log)
	return &Service{
		Tour:    NewTourService(repo.Tour, log),
		Booking: booking,
		Wizard:  NewWizardService(repo, booking, orders, log),
		Contact: NewContactService(repo.Contact, mail, log),
	}
}
