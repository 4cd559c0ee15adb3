// Package ledger appends confirmed bookings to the operator's
// spreadsheet. The spreadsheet is the external system of record; after a
// successful append the row belongs entirely to it.
package ledger

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Ledger appends one row per confirmed booking.
type Ledger interface {
	AppendBooking(ctx context.Context, booking *entity.Booking) error
}

// BookingRow builds the ledger row. The column order is fixed and matches
// the header row of the Bookings tab: booking id, source, status, tour name,
// tour slug, date, guests, first name, last name, email, phone, total,
// payment reference, special requests, created at.
func BookingRow(b *entity.Booking) []interface{} {
	return []interface{}{
		b.BookingID,
		b.Source,
		b.Status,
		b.TourName,
		b.TourSlug,
		b.TourDate,
		strconv.Itoa(b.Guests),
		b.FirstName,
		b.LastName,
		b.Email,
		b.Phone,
		b.TotalEUR,
		b.PaymentReference,
		b.SpecialRequests,
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type sheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
	bookingsRange string
	log           *zap.Logger
}

// NewSheetsLedger builds a Ledger over the Google Sheets API using a
// base64-encoded service account credential.
func NewSheetsLedger(ctx context.Context, config utils.SheetsConfig, log *zap.Logger) (Ledger, error) {
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets ledger: spreadsheet ID is not configured")
	}

	creds, err := base64.StdEncoding.DecodeString(config.CredentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("sheets ledger: decode credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets ledger: create service: %w", err)
	}

	return &sheetsLedger{
		svc:           svc,
		spreadsheetID: config.SpreadsheetID,
		bookingsRange: config.BookingsRange,
		log:           log.With(zap.String("component", "sheets_ledger")),
	}, nil
}

func (l *sheetsLedger) AppendBooking(ctx context.Context, booking *entity.Booking) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{BookingRow(booking)},
	}

	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, l.bookingsRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking %s to ledger: %w", booking.BookingID, err)
	}

	l.log.Info("Booking appended to ledger",
		zap.String("booking_id", booking.BookingID))

	return nil
}
