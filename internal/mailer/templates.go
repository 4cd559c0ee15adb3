package mailer

import (
	"bytes"
	"html/template"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/utils"
)

var guestConfirmationTmpl = template.Must(template.New("guest").Parse(`
<div style="font-family: Georgia, serif; max-width: 600px; margin: 0 auto; color: #333;">
  <h1 style="font-weight: normal; font-size: 28px; margin-bottom: 24px;">Booking Confirmed</h1>

  <p style="font-size: 16px; line-height: 1.6; margin-bottom: 16px;">Dear {{.FirstName}},</p>

  <p style="font-size: 16px; line-height: 1.6; margin-bottom: 24px;">
    Thank you for booking with us. Your tour is confirmed!
  </p>

  <div style="background: #f8f5f0; padding: 24px; margin-bottom: 24px;">
    <h2 style="font-size: 18px; margin: 0 0 16px 0; font-weight: normal;">Booking Details</h2>
    <p style="margin: 8px 0;"><strong>Booking ID:</strong> {{.BookingID}}</p>
    <p style="margin: 8px 0;"><strong>Tour:</strong> {{.TourName}}</p>
    <p style="margin: 8px 0;"><strong>Date:</strong> {{.TourDate}}</p>
    <p style="margin: 8px 0;"><strong>Guests:</strong> {{.Guests}}</p>
    <p style="margin: 8px 0;"><strong>Total Paid:</strong> {{.TotalEUR}}</p>
  </div>

  <p style="font-size: 16px; line-height: 1.6; margin-bottom: 16px;">
    We will contact you within 24 hours to confirm pickup details and answer any questions.
  </p>

  <p style="font-size: 16px; line-height: 1.6; margin-top: 32px;">
    We look forward to traveling with you!
  </p>
</div>
`))

var operatorAlertTmpl = template.Must(template.New("operator").Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>New Tour Booking - {{.BookingID}}</h2>
  <p><strong>Tour:</strong> {{.TourName}}</p>
  <p><strong>Date:</strong> {{.TourDate}}</p>
  <p><strong>Guests:</strong> {{.Guests}}</p>
  <p><strong>Guest:</strong> {{.FirstName}} {{.LastName}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Total:</strong> {{.TotalEUR}}</p>
  <p><strong>Payment Reference:</strong> {{.PaymentReference}}</p>
  {{if .SpecialRequests}}<p><strong>Notes:</strong> {{.SpecialRequests}}</p>{{end}}
</div>
`))

var contactNotificationTmpl = template.Must(template.New("contact").Parse(`
<div style="font-family: sans-serif; max-width: 600px;">
  <h2>{{if eq .KindStr "newsletter"}}Newsletter Signup{{else}}Contact Inquiry{{end}}</h2>
  {{if .Name}}<p><strong>Name:</strong> {{.Name}}</p>{{end}}
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Message}}<p><strong>Message:</strong> {{.Message}}</p>{{end}}
</div>
`))

type bookingEmailData struct {
	*entity.Booking
	TourDate string // long form, e.g. "Friday, July 10, 2026"
	Phone    string
}

func bookingData(b *entity.Booking) bookingEmailData {
	phone := b.Phone
	if phone == "" {
		phone = "Not provided"
	}
	return bookingEmailData{
		Booking:  b,
		TourDate: utils.FormatLongDate(b.TourDate),
		Phone:    phone,
	}
}

func renderGuestConfirmation(b *entity.Booking) (string, error) {
	var buf bytes.Buffer
	if err := guestConfirmationTmpl.Execute(&buf, bookingData(b)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderOperatorAlert(b *entity.Booking) (string, error) {
	var buf bytes.Buffer
	if err := operatorAlertTmpl.Execute(&buf, bookingData(b)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderContactNotification(c *entity.Contact) (string, error) {
	data := struct {
		*entity.Contact
		KindStr string
	}{c, string(c.Kind)}

	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
