package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"petstore/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository and
// SupportRepository.
type MockOrderRepository struct {
	orders   map[string]models.Order
	orderIDs []string
	tickets  []models.SupportTicket
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores a new order and returns the acknowledgement.
func (r *MockOrderRepository) Create(ctx context.Context, req models.OrderRequest) (*models.OrderResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := models.Order{
		OrderID:   "ORD-" + uuid.New().String(),
		OrderDate: time.Now(),
		Customer: models.CustomerInfo{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		ShippingAddress: models.ShippingAddress{
			Street:  req.Address,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
			Country: req.Country,
		},
		Items: req.Items,
		Pricing: models.Pricing{
			Subtotal: req.Subtotal,
			Shipping: req.Shipping,
			Tax:      req.Tax,
			Total:    req.Total,
		},
		Status: req.Status,
	}
	r.orders[order.OrderID] = order
	r.orderIDs = append(r.orderIDs, order.OrderID)
	return &models.OrderResponse{
		Success: true,
		OrderID: order.OrderID,
		Message: "Order created successfully",
		Order:   order,
	}, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// ListByEmail returns every order placed with email, oldest first.
func (r *MockOrderRepository) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, id := range r.orderIDs {
		if order := r.orders[id]; order.Customer.Email == email {
			orderList = append(orderList, order)
		}
	}
	sort.SliceStable(orderList, func(i, j int) bool {
		return orderList[i].OrderDate.Before(orderList[j].OrderDate)
	})
	return orderList, nil
}

// CreateTicket stores a support ticket in the open state.
func (r *MockOrderRepository) CreateTicket(ctx context.Context, form models.ContactForm) (*models.SupportTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket := models.SupportTicket{
		ID:        uuid.New().String(),
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		Status:    models.SupportStatusOpen,
		CreatedAt: time.Now(),
	}
	r.tickets = append(r.tickets, ticket)
	return &ticket, nil
}

// ListTickets returns tickets with the given status, or all of them.
func (r *MockOrderRepository) ListTickets(ctx context.Context, status string) ([]models.SupportTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticketList := make([]models.SupportTicket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if status == "" || status == models.SupportStatusAll || t.Status == status {
			ticketList = append(ticketList, t)
		}
	}
	return ticketList, nil
}
