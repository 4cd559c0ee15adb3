package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireContact(r chi.Router, contactHandler *adaptor.ContactHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/contact - Inquiry form
	r.Post("/api/contact", contactHandler.SubmitInquiry)

	// POST /api/newsletter - Newsletter signup
	r.Post("/api/newsletter", contactHandler.SubscribeNewsletter)
}
