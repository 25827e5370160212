package models

// ContactRequest is a contact-form submission relayed by email.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SubscribeRequest signs an address up for the newsletter confirmation mail.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
