package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WizardHandler struct {
	service usecase.WizardService
	log     *zap.Logger
}

func NewWizardHandler(service usecase.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log.With(zap.String("handler", "wizard")),
	}
}

// StartWizard handles POST /api/wizard (public)
func (h *WizardHandler) StartWizard(w http.ResponseWriter, r *http.Request) {
	var req request.StartWizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	draft, err := h.service.Start(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "start wizard")
		return
	}

	utils.ResponseCreated(w, "success", draft)
}

// GetDraft handles GET /api/wizard/{id} (public)
func (h *WizardHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	draft, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get draft")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// UpdateDraft handles PATCH /api/wizard/{id} (public)
func (h *WizardHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	var req request.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	draft, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update draft")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// NextStep handles POST /api/wizard/{id}/next (public)
func (h *WizardHandler) NextStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	draft, err := h.service.Next(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "advance wizard")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// PrevStep handles POST /api/wizard/{id}/back (public)
func (h *WizardHandler) PrevStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	draft, err := h.service.Back(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "rewind wizard")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}

// CloseWizard handles DELETE /api/wizard/{id} (public)
func (h *WizardHandler) CloseWizard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	if err := h.service.Close(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "close wizard")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreatePaymentOrder handles POST /api/wizard/{id}/payment/order (public)
func (h *WizardHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	order, err := h.service.CreatePaymentOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment order")
		return
	}

	utils.ResponseCreated(w, "success", order)
}

// CapturePayment handles POST /api/wizard/{id}/payment/capture (public)
func (h *WizardHandler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Draft ID is required", nil)
		return
	}

	var req request.CapturePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	draft, err := h.service.CapturePayment(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "capture payment")
		return
	}

	utils.ResponseSuccess(w, "success", draft)
}
