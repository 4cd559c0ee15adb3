package adaptor

import (
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// ListTours handles GET /api/tours (public)
func (h *TourHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list tours")
		return
	}

	utils.ResponseSuccess(w, "success", tours)
}

// GetTour handles GET /api/tours/{slug} (public)
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Tour slug is required", nil)
		return
	}

	tour, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}
