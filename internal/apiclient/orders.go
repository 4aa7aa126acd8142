package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"petstore/internal/models"
)

// OrderAPI implements repositories.OrderRepository and
// repositories.SupportRepository.
type OrderAPI struct {
	c *Client
}

// Orders returns the order and support endpoints of the API.
func (c *Client) Orders() *OrderAPI {
	return &OrderAPI{c: c}
}

type createOrderResponse struct {
	Success *bool           `json:"success"`
	OrderID string          `json:"orderId"`
	MongoID string          `json:"_id"`
	ID      string          `json:"id"`
	Message string          `json:"message"`
	Order   json.RawMessage `json:"order"`
}

// Create submits an order. The API answers in several shapes; the order ID
// is taken from orderId, _id or id, and generated when none is present.
func (api *OrderAPI) Create(ctx context.Context, req models.OrderRequest) (*models.OrderResponse, error) {
	body, err := api.c.post(ctx, api.c.url(nil, "orders"), req)
	if err != nil {
		return nil, err
	}

	var raw createOrderResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	resp := &models.OrderResponse{
		Success: raw.Success == nil || *raw.Success,
		OrderID: firstNonEmpty(raw.OrderID, raw.MongoID, raw.ID),
		Message: raw.Message,
		Order:   json.RawMessage(body),
	}
	if resp.OrderID == "" {
		resp.OrderID = fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
	}
	if resp.Message == "" {
		resp.Message = "Order created successfully"
	}
	if len(raw.Order) > 0 && string(raw.Order) != "null" {
		resp.Order = raw.Order
	}
	return resp, nil
}

// GetByID fetches one order.
func (api *OrderAPI) GetByID(ctx context.Context, id string) (*models.Order, error) {
	body, err := api.c.get(ctx, api.c.url(nil, "orders", id))
	if err != nil {
		return nil, fmt.Errorf("order with ID %s: %w", id, err)
	}
	var order models.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", id, err)
	}
	return &order, nil
}

// ListByEmail fetches every order placed with email.
func (api *OrderAPI) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return getList[models.Order](ctx, api.c, api.c.url(url.Values{"email": {email}}, "orders"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
