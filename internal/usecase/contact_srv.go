package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/mailer"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactService interface {
	SubmitInquiry(ctx context.Context, req *request.ContactRequest) error
	SubscribeNewsletter(ctx context.Context, req *request.NewsletterRequest) error
}

type contactService struct {
	contactRepo repository.ContactRepository
	mail        mailer.Mailer
	log         *zap.Logger
}

func NewContactService(contactRepo repository.ContactRepository, mail mailer.Mailer, log *zap.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		mail:        mail,
		log:         log.With(zap.String("service", "contact")),
	}
}

func (s *contactService) SubmitInquiry(ctx context.Context, req *request.ContactRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	contact := &entity.Contact{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Kind:    entity.ContactKindInquiry,
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return fmt.Errorf("submit inquiry: %w", err)
	}

	// Notification is best effort; the inquiry is already stored.
	go s.notifyOperator(contact)

	return nil
}

func (s *contactService) SubscribeNewsletter(ctx context.Context, req *request.NewsletterRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	exists, err := s.contactRepo.ExistsNewsletterEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("subscribe newsletter: %w", err)
	}
	if exists {
		// Re-subscribing is a no-op, not an error.
		return nil
	}

	contact := &entity.Contact{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Kind:  entity.ContactKindNewsletter,
		Email: req.Email,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return fmt.Errorf("subscribe newsletter: %w", err)
	}

	return nil
}

func (s *contactService) notifyOperator(contact *entity.Contact) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.mail.SendContactNotification(ctx, contact); err != nil {
		s.log.Error("Failed to send contact notification",
			zap.Error(err),
			zap.String("contact_id", contact.ID.String()),
		)
	}
}
