package request

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}
