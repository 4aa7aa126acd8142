package repositories

import (
	"context"

	"petstore/internal/models"
)

// OrderRepository defines the interface for order submission and lookup.
type OrderRepository interface {
	Create(ctx context.Context, order models.OrderRequest) (*models.OrderResponse, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

// SupportRepository defines the interface for support tickets.
type SupportRepository interface {
	CreateTicket(ctx context.Context, form models.ContactForm) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, status string) ([]models.SupportTicket, error)
}
