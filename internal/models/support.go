package models

import "time"

// Support inbox statuses.
const (
	SupportStatusAll      = "all"
	SupportStatusOpen     = "open"
	SupportStatusPending  = "pending"
	SupportStatusResolved = "resolved"
)

// ContactForm is submitted from the contact page.
type ContactForm struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject,omitempty" validate:"omitempty,max=120"`
	Message   string `json:"message" validate:"required,min=10,max=2000"`
}

// SupportTicket is a contact request as stored by the support API.
type SupportTicket struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupportEvent notifies open inbox views that a ticket changed.
type SupportEvent struct {
	Type     string    `json:"type"`
	TicketID string    `json:"ticketId,omitempty"`
	Status   string    `json:"status,omitempty"`
	At       time.Time `json:"at"`
}
