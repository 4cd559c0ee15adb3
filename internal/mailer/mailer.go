// Package mailer sends the transactional emails of the booking and contact
// funnels through the Resend API. Every send is best effort; callers log
// failures and never surface them to the guest.
package mailer

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/utils"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type Mailer interface {
	SendGuestConfirmation(ctx context.Context, booking *entity.Booking) error
	SendOperatorAlert(ctx context.Context, booking *entity.Booking) error
	SendContactNotification(ctx context.Context, contact *entity.Contact) error
}

type resendMailer struct {
	client   *resend.Client
	from     string
	operator string
	log      *zap.Logger
}

func NewResendMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &resendMailer{
		client:   resend.NewClient(config.APIKey),
		from:     config.From,
		operator: config.OperatorAddr,
		log:      log.With(zap.String("component", "mailer")),
	}
}

func (m *resendMailer) SendGuestConfirmation(ctx context.Context, booking *entity.Booking) error {
	if booking.Email == "" {
		return nil
	}

	html, err := renderGuestConfirmation(booking)
	if err != nil {
		return fmt.Errorf("render guest confirmation: %w", err)
	}

	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{booking.Email},
		Subject: fmt.Sprintf("Booking Confirmed - %s", booking.TourName),
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send guest confirmation for %s: %w", booking.BookingID, err)
	}

	m.log.Info("Guest confirmation email sent",
		zap.String("booking_id", booking.BookingID))

	return nil
}

func (m *resendMailer) SendOperatorAlert(ctx context.Context, booking *entity.Booking) error {
	html, err := renderOperatorAlert(booking)
	if err != nil {
		return fmt.Errorf("render operator alert: %w", err)
	}

	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.operator},
		Subject: fmt.Sprintf("New Booking: %s - %s %s", booking.TourName, booking.FirstName, booking.LastName),
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send operator alert for %s: %w", booking.BookingID, err)
	}

	m.log.Info("Operator alert email sent",
		zap.String("booking_id", booking.BookingID))

	return nil
}

func (m *resendMailer) SendContactNotification(ctx context.Context, contact *entity.Contact) error {
	html, err := renderContactNotification(contact)
	if err != nil {
		return fmt.Errorf("render contact notification: %w", err)
	}

	subject := "New Contact Inquiry"
	if contact.Kind == entity.ContactKindNewsletter {
		subject = "New Newsletter Signup"
	}

	_, err = m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.operator},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}

	return nil
}
