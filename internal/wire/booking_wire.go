package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - Submit a booking with an already-captured payment
	r.Post("/api/bookings", bookingHandler.SubmitBooking)

	// ==================== ADMIN ROUTES ====================
	// Operator recovery surface: bookings and the state of their ledger
	// appends, behind the admin API key.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.APIKey(config.App.AdminAPIKey, log))

		// GET /api/admin/bookings - Paginated booking list
		r.Get("/bookings", bookingHandler.ListBookings)

		// GET /api/admin/outbox - Ledger outbox entries by status
		r.Get("/outbox", bookingHandler.ListOutbox)
	})
}
