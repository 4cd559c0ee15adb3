// Package wizard holds the booking wizard state machine: a draft that moves
// through date/guests -> contact -> payment -> confirmed, with a validation
// gate on every forward transition. The reducer is pure so the gates and the
// terminal confirmed state can be tested without HTTP or storage.
package wizard

import (
	"fmt"
	"time"

	"tour-booking/internal/pricing"
)

type Step string

const (
	StepDateGuests Step = "date_guests"
	StepContact    Step = "contact"
	StepPayment    Step = "payment"
	StepConfirmed  Step = "confirmed"
)

// MinGuests is the minimum party size the wizard accepts.
const MinGuests = 2

type Contact struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	PhoneLocal       string `json:"phone_local,omitempty"`
}

// Phone renders the optional phone as stored on the booking, e.g. "+44 7700123".
func (c Contact) Phone() string {
	if c.PhoneLocal == "" {
		return ""
	}
	if c.PhoneCountryCode == "" {
		return c.PhoneLocal
	}
	return c.PhoneCountryCode + " " + c.PhoneLocal
}

// Draft is the in-progress booking held by the wizard. It is bound to one
// tour at creation and discarded wholesale when the wizard is closed.
type Draft struct {
	ID              string    `json:"id"`
	TourSlug        string    `json:"tour_slug"`
	TourName        string    `json:"tour_name"`
	BasePrice       int       `json:"base_price"`
	TravelDate      string    `json:"travel_date"` // YYYY-MM-DD
	Guests          int       `json:"guests"`
	Contact         Contact   `json:"contact"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Step            Step      `json:"step"`
	Submitting      bool      `json:"submitting"`
	BookingID       string    `json:"booking_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewDraft starts a wizard on the first step for the given tour.
func NewDraft(id, tourSlug, tourName string, basePrice int) Draft {
	return Draft{
		ID:        id,
		TourSlug:  tourSlug,
		TourName:  tourName,
		BasePrice: basePrice,
		Guests:    MinGuests,
		Step:      StepDateGuests,
		CreatedAt: time.Now(),
	}
}

// Total is the amount the payment step will capture.
func (d Draft) Total() int {
	return pricing.Total(d.BasePrice, d.Guests)
}

// Event is one wizard input. Apply is the only way a draft changes.
type Event interface {
	isEvent()
}

// SetTrip updates the date/guests fields. Allowed on any step before confirmed.
type SetTrip struct {
	TravelDate string
	Guests     int
}

// SetContact updates the contact fields. Allowed on any step before confirmed.
type SetContact struct {
	Contact         Contact
	SpecialRequests string
}

// Next advances one step if the current step's gate passes.
type Next struct{}

// Back returns one step. Never clears data, never allowed out of confirmed.
type Back struct{}

// Confirm records a successful capture + submission and moves to confirmed.
type Confirm struct {
	BookingID string
}

func (SetTrip) isEvent()    {}
func (SetContact) isEvent() {}
func (Next) isEvent()       {}
func (Back) isEvent()       {}
func (Confirm) isEvent()    {}

// Apply runs one event against the draft and returns the new draft.
// The input draft is never mutated.
func Apply(d Draft, ev Event, now time.Time) (Draft, error) {
	if d.Step == StepConfirmed {
		return d, fmt.Errorf("cannot modify a confirmed booking")
	}

	switch e := ev.(type) {
	case SetTrip:
		if e.Guests < MinGuests {
			return d, fmt.Errorf("invalid guest count %d: minimum party is %d", e.Guests, MinGuests)
		}
		d.TravelDate = e.TravelDate
		d.Guests = e.Guests
		return d, nil

	case SetContact:
		d.Contact = e.Contact
		d.SpecialRequests = e.SpecialRequests
		return d, nil

	case Next:
		return applyNext(d, now)

	case Back:
		switch d.Step {
		case StepContact:
			d.Step = StepDateGuests
		case StepPayment:
			d.Step = StepContact
		default:
			return d, fmt.Errorf("cannot go back from step %s", d.Step)
		}
		return d, nil

	case Confirm:
		if d.Step != StepPayment {
			return d, fmt.Errorf("cannot confirm from step %s", d.Step)
		}
		if e.BookingID == "" {
			return d, fmt.Errorf("invalid confirmation: missing booking ID")
		}
		d.Step = StepConfirmed
		d.BookingID = e.BookingID
		d.Submitting = false
		return d, nil

	default:
		return d, fmt.Errorf("invalid wizard event %T", ev)
	}
}

func applyNext(d Draft, now time.Time) (Draft, error) {
	switch d.Step {
	case StepDateGuests:
		if err := validateTrip(d, now); err != nil {
			return d, err
		}
		d.Step = StepContact
		return d, nil

	case StepContact:
		if d.Contact.FirstName == "" || d.Contact.LastName == "" {
			return d, fmt.Errorf("invalid contact: first and last name are required")
		}
		if d.Contact.Email == "" {
			return d, fmt.Errorf("invalid contact: email is required")
		}
		d.Step = StepPayment
		return d, nil

	case StepPayment:
		// Leaving the payment step forward happens only through Confirm.
		return d, fmt.Errorf("cannot advance past payment without a captured payment")

	default:
		return d, fmt.Errorf("cannot advance from step %s", d.Step)
	}
}

func validateTrip(d Draft, now time.Time) error {
	if d.TravelDate == "" {
		return fmt.Errorf("invalid trip: travel date is required")
	}
	date, err := time.Parse("2006-01-02", d.TravelDate)
	if err != nil {
		return fmt.Errorf("invalid travel date %q: %w", d.TravelDate, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return fmt.Errorf("invalid travel date %s: date is in the past", d.TravelDate)
	}
	if d.Guests < MinGuests {
		return fmt.Errorf("invalid guest count %d: minimum party is %d", d.Guests, MinGuests)
	}
	return nil
}
