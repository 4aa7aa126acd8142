package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"petstore/internal/models"
	"petstore/internal/repositories"
	"petstore/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	paymentMethodCard  = "credit_card"
	orderStatusPending = "pending"
)

// EventPublisher publishes a message to an exchange. *rabbitmq.Client
// implements it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// PricingConfig holds the values used to quote an order.
type PricingConfig struct {
	ShippingFlatFee       float64
	FreeShippingThreshold float64 // 0 disables free shipping
	TaxRate               float64
}

// OrderService handles checkout and order lookups.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	exchange  string
	pricing   PricingConfig
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are sent.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, exchange string, pricing PricingConfig, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		exchange:  exchange,
		pricing:   pricing,
		validate:  newValidator(),
		logger:    logger,
	}
}

// Quote prices the current content of cart.
func (s *OrderService) Quote(cart *Cart) models.Pricing {
	return s.quote(cart.TotalPrice())
}

func (s *OrderService) quote(subtotal decimal.Decimal) models.Pricing {
	shipping := decimal.NewFromFloat(s.pricing.ShippingFlatFee)
	if subtotal.IsZero() {
		shipping = decimal.Zero
	} else if s.pricing.FreeShippingThreshold > 0 && subtotal.GreaterThanOrEqual(decimal.NewFromFloat(s.pricing.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(decimal.NewFromFloat(s.pricing.TaxRate)).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	return models.Pricing{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Shipping: shipping.Round(2).InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.Round(2).InexactFloat64(),
	}
}

// Checkout validates form, places an order for a snapshot of the session's
// cart and, once the order API accepted it, takes the ordered lines out of
// the cart. Lines added while the order was being placed stay.
func (s *OrderService) Checkout(ctx context.Context, session *Session, form models.CheckoutForm) (*models.OrderResponse, error) {
	form.CardNumber = strings.ReplaceAll(form.CardNumber, " ", "")
	if err := validateStruct(s.validate, form); err != nil {
		return nil, err
	}

	lines := session.Cart.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	req := s.buildRequest(form, lines, s.quote(subtotal))
	resp, err := s.orderRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publishOrderPlaced(session.ID, req, resp.OrderID)
	session.Cart.RemoveLines(lines)

	s.logger.Info("order placed",
		zap.String("order_id", resp.OrderID),
		zap.String("session_id", session.ID),
		zap.Int("items", len(req.Items)),
		zap.Float64("total", req.Total),
	)
	return resp, nil
}

func (s *OrderService) buildRequest(form models.CheckoutForm, lines []models.CartLineItem, pricing models.Pricing) models.OrderRequest {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
			Category:  line.Category,
			Subtotal:  line.Subtotal().Round(2).InexactFloat64(),
		})
	}

	return models.OrderRequest{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		Phone:          form.Phone,
		Address:        form.Address,
		City:           form.City,
		State:          form.State,
		ZipCode:        form.ZipCode,
		Country:        form.Country,
		CardNumber:     form.CardNumber[len(form.CardNumber)-4:],
		CardholderName: form.CardName,
		ExpiryDate:     form.ExpiryDate,
		PaymentMethod:  paymentMethodCard,
		Items:          items,
		Subtotal:       pricing.Subtotal,
		Shipping:       pricing.Shipping,
		Tax:            pricing.Tax,
		Total:          pricing.Total,
		Status:         orderStatusPending,
	}
}

func (s *OrderService) publishOrderPlaced(sessionID string, req models.OrderRequest, orderID string) {
	if s.publisher == nil {
		s.logger.Debug("no event publisher configured, skipping order event", zap.String("order_id", orderID))
		return
	}

	count := 0
	for _, item := range req.Items {
		count += item.Quantity
	}
	body, err := json.Marshal(models.OrderPlacedEvent{
		OrderID:    orderID,
		SessionID:  sessionID,
		Email:      req.Email,
		ItemCount:  count,
		Total:      req.Total,
		Status:     req.Status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to marshal order event", zap.String("order_id", orderID), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(s.exchange, rabbitmq.RoutingKeyOrderCreated, body); err != nil {
		s.logger.Warn("failed to publish order event", zap.String("order_id", orderID), zap.Error(err))
	}
}

// Order retrieves a single order by its ID.
func (s *OrderService) Order(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// OrdersByEmail lists the orders placed with email.
func (s *OrderService) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.orderRepo.ListByEmail(ctx, email)
}
