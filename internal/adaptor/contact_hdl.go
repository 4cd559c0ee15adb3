package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// SubmitInquiry handles POST /api/contact (public)
func (h *ContactHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SubmitInquiry(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "submit inquiry")
		return
	}

	utils.ResponseCreated(w, "success", nil)
}

// SubscribeNewsletter handles POST /api/newsletter (public)
func (h *ContactHandler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req request.NewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SubscribeNewsletter(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "subscribe newsletter")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
