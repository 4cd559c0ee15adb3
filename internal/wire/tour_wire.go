package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/tours - List published tours
	r.Get("/api/tours", tourHandler.ListTours)

	// GET /api/tours/{slug} - Tour detail
	r.Get("/api/tours/{slug}", tourHandler.GetTour)
}
