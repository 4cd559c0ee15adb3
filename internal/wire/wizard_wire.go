package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWizard(r chi.Router, wizardHandler *adaptor.WizardHandler) {
	// ==================== PUBLIC ROUTES ====================
	// The wizard is anonymous: drafts are addressed by their opaque ID.
	r.Route("/api/wizard", func(r chi.Router) {
		// POST /api/wizard - Open a draft for a tour
		r.Post("/", wizardHandler.StartWizard)

		// GET /api/wizard/{id} - Current draft state
		r.Get("/{id}", wizardHandler.GetDraft)

		// PATCH /api/wizard/{id} - Update entered fields
		r.Patch("/{id}", wizardHandler.UpdateDraft)

		// POST /api/wizard/{id}/next - Advance one step
		r.Post("/{id}/next", wizardHandler.NextStep)

		// POST /api/wizard/{id}/back - Go back one step
		r.Post("/{id}/back", wizardHandler.PrevStep)

		// DELETE /api/wizard/{id} - Dismiss the wizard and discard the draft
		r.Delete("/{id}", wizardHandler.CloseWizard)

		// POST /api/wizard/{id}/payment/order - Create a provider order
		r.Post("/{id}/payment/order", wizardHandler.CreatePaymentOrder)

		// POST /api/wizard/{id}/payment/capture - Capture and confirm
		r.Post("/{id}/payment/capture", wizardHandler.CapturePayment)
	})
}
