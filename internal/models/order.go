package models

import "time"

// CheckoutForm is what the customer enters on the checkout page.
type CheckoutForm struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`

	Address string `json:"address" validate:"required,max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	ZipCode string `json:"zipCode" validate:"required,max=20"`
	Country string `json:"country" validate:"required,max=100"`

	CardNumber string `json:"cardNumber" validate:"required,number,min=12,max=19"`
	CardName   string `json:"cardName" validate:"required,max=100"`
	ExpiryDate string `json:"expiryDate" validate:"required,expiry"`
	CVV        string `json:"cvv" validate:"required,number,min=3,max=4"`
}

// Pricing is the order summary shown next to the checkout form.
type Pricing struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderItem is a cart line as sent to the order API.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderRequest is the flat payload accepted by the order API.
// Only the last four card digits are ever sent; the CVV never is.
type OrderRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`

	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardholderName"`
	ExpiryDate     string `json:"expiryDate"`
	PaymentMethod  string `json:"paymentMethod"`

	Items []OrderItem `json:"items"`

	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Status string `json:"status"`
}

// CustomerInfo identifies who placed an order.
type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Order is an order as returned by the order API.
type Order struct {
	OrderID         string          `json:"orderId"`
	OrderDate       time.Time       `json:"orderDate"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	Pricing         Pricing         `json:"pricing"`
	Status          string          `json:"status"` // pending, processing, confirmed, shipped, delivered, cancelled, refunded
}

// OrderResponse is returned to the client after a successful checkout.
type OrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
	Order   any    `json:"order,omitempty"`
}

// OrderPlacedEvent is published once the order API accepted an order.
type OrderPlacedEvent struct {
	OrderID    string    `json:"orderId"`
	SessionID  string    `json:"sessionId"`
	Email      string    `json:"email"`
	ItemCount  int       `json:"itemCount"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}
