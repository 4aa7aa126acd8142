package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"petstore/internal/models"
	"petstore/internal/services"
	"petstore/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order models.OrderRequest) (*models.OrderResponse, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderResponse), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

var testPricing = services.PricingConfig{ShippingFlatFee: 9.99, TaxRate: 0.08}

func validCheckoutForm() models.CheckoutForm {
	return models.CheckoutForm{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Phone:      "5551234567",
		Address:    "1 Main St",
		City:       "Springfield",
		State:      "IL",
		ZipCode:    "62701",
		Country:    "US",
		CardNumber: "4111 1111 1111 1234",
		CardName:   "Jane Doe",
		ExpiryDate: "12/29",
		CVV:        "123",
	}
}

func newSession(t *testing.T) *services.Session {
	t.Helper()
	store, _ := newStore()
	return services.NewSessionRegistry(store, nil).Get("session-1")
}

func TestOrderService_Quote(t *testing.T) {
	session := newSession(t)
	svc := services.NewOrderService(new(MockOrderRepository), nil, "", testPricing, nil)

	empty := svc.Quote(session.Cart)
	assert.Equal(t, models.Pricing{}, empty)

	session.Cart.AddToCart(product("p1", "Kibble", 19.99), 2)
	quote := svc.Quote(session.Cart)
	assert.Equal(t, 39.98, quote.Subtotal)
	assert.Equal(t, 9.99, quote.Shipping)
	assert.Equal(t, 3.2, quote.Tax)
	assert.Equal(t, 53.17, quote.Total)
}

func TestOrderService_QuoteFreeShipping(t *testing.T) {
	session := newSession(t)
	pricing := testPricing
	pricing.FreeShippingThreshold = 50
	svc := services.NewOrderService(new(MockOrderRepository), nil, "", pricing, nil)

	session.Cart.AddToCart(product("p1", "Bed", 50), 1)
	assert.Zero(t, svc.Quote(session.Cart).Shipping)
}

func TestOrderService_Checkout(t *testing.T) {
	session := newSession(t)
	session.Cart.AddToCart(product("p1", "Kibble", 19.99), 2)

	repo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	svc := services.NewOrderService(repo, publisher, "petstore", testPricing, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(req models.OrderRequest) bool {
		return req.CardNumber == "1234" &&
			req.CardholderName == "Jane Doe" &&
			req.PaymentMethod == "credit_card" &&
			req.Status == "pending" &&
			len(req.Items) == 1 &&
			req.Items[0].Quantity == 2 &&
			req.Items[0].Subtotal == 39.98 &&
			req.Total == 53.17
	})).Return(&models.OrderResponse{Success: true, OrderID: "ORD-1"}, nil).Once()

	publisher.On("Publish", "petstore", rabbitmq.RoutingKeyOrderCreated, mock.MatchedBy(func(body []byte) bool {
		var ev models.OrderPlacedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return false
		}
		return ev.OrderID == "ORD-1" && ev.SessionID == "session-1" && ev.ItemCount == 2
	})).Return(nil).Once()

	resp, err := svc.Checkout(context.Background(), session, validCheckoutForm())

	require.NoError(t, err)
	assert.Equal(t, "ORD-1", resp.OrderID)
	assert.Empty(t, session.Cart.Items())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_CheckoutValidation(t *testing.T) {
	session := newSession(t)
	session.Cart.AddToCart(product("p1", "Kibble", 10), 1)
	repo := new(MockOrderRepository)
	svc := services.NewOrderService(repo, nil, "", testPricing, nil)

	form := validCheckoutForm()
	form.Email = "not-an-email"
	form.ExpiryDate = "13/29"
	form.CVV = "12"

	_, err := svc.Checkout(context.Background(), session, form)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "expiryDate")
	assert.Contains(t, verr.Fields, "cvv")
	assert.Len(t, session.Cart.Items(), 1)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CheckoutRejectsNonDigitCardFields(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		cvv        string
		field      string
	}{
		{"signed card number", "-4111111111.11", "123", "cardNumber"},
		{"decimal card number", "4111111111111.5", "123", "cardNumber"},
		{"signed cvv", "4111111111111234", "-12", "cvv"},
		{"decimal cvv", "4111111111111234", "1.5", "cvv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newSession(t)
			session.Cart.AddToCart(product("p1", "Kibble", 10), 1)
			repo := new(MockOrderRepository)
			svc := services.NewOrderService(repo, nil, "", testPricing, nil)

			form := validCheckoutForm()
			form.CardNumber = tt.cardNumber
			form.CVV = tt.cvv

			_, err := svc.Checkout(context.Background(), session, form)

			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "must contain digits only", verr.Fields[tt.field])
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CheckoutEmptyCart(t *testing.T) {
	session := newSession(t)
	svc := services.NewOrderService(new(MockOrderRepository), nil, "", testPricing, nil)

	_, err := svc.Checkout(context.Background(), session, validCheckoutForm())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestOrderService_CheckoutKeepsCartOnFailure(t *testing.T) {
	session := newSession(t)
	session.Cart.AddToCart(product("p1", "Kibble", 10), 1)
	repo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	svc := services.NewOrderService(repo, publisher, "petstore", testPricing, nil)

	upstream := errors.New("upstream down")
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, upstream).Once()

	_, err := svc.Checkout(context.Background(), session, validCheckoutForm())

	assert.ErrorIs(t, err, upstream)
	assert.Len(t, session.Cart.Items(), 1)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CheckoutKeepsLinesAddedWhileOrdering(t *testing.T) {
	session := newSession(t)
	session.Cart.AddToCart(product("p1", "Kibble", 10), 2)
	repo := new(MockOrderRepository)
	svc := services.NewOrderService(repo, nil, "", testPricing, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(req models.OrderRequest) bool {
		return len(req.Items) == 1 && req.Items[0].Quantity == 2 && req.Subtotal == 20
	})).Run(func(mock.Arguments) {
		session.Cart.AddToCart(product("p2", "Leash", 5), 1)
		session.Cart.AddToCart(product("p1", "Kibble", 10), 1)
	}).Return(&models.OrderResponse{Success: true, OrderID: "ORD-3"}, nil).Once()

	_, err := svc.Checkout(context.Background(), session, validCheckoutForm())
	require.NoError(t, err)

	items := session.Cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
	repo.AssertExpectations(t)
}

func TestOrderService_PublishFailureDoesNotFailCheckout(t *testing.T) {
	session := newSession(t)
	session.Cart.AddToCart(product("p1", "Kibble", 10), 1)
	repo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	svc := services.NewOrderService(repo, publisher, "petstore", testPricing, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(&models.OrderResponse{Success: true, OrderID: "ORD-2"}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker gone")).Once()

	resp, err := svc.Checkout(context.Background(), session, validCheckoutForm())

	require.NoError(t, err)
	assert.Equal(t, "ORD-2", resp.OrderID)
	assert.Empty(t, session.Cart.Items())
}

func TestOrderService_Lookups(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := services.NewOrderService(repo, nil, "", testPricing, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "ORD-1").Return(&models.Order{OrderID: "ORD-1"}, nil).Once()
	repo.On("ListByEmail", ctx, "jane@example.com").Return([]models.Order{{OrderID: "ORD-1"}}, nil).Once()

	order, err := svc.Order(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.OrderID)

	orders, err := svc.OrdersByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	repo.AssertExpectations(t)
}
