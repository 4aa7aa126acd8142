package handlers

import (
	"petstore/internal/middleware"
	"petstore/internal/models"
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles checkout and order lookups.
type OrderHandler struct {
	service  *services.OrderService
	registry *services.SessionRegistry
	logger   *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, registry *services.SessionRegistry, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, registry: registry, logger: orNop(logger)}
}

// RegisterRoutes registers the checkout and order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleCheckout places an order for the session's cart.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var form models.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	session := h.registry.Get(middleware.SessionID(c))
	resp, err := h.service.Checkout(c.UserContext(), session, form)
	if err != nil {
		return respondError(c, h.logger, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleGetOrders lists the orders placed with the email query parameter.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return badRequest(c, "email query parameter is required", nil)
	}
	orders, err := h.service.OrdersByEmail(c.UserContext(), email)
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.Order(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve order")
	}
	return c.JSON(order)
}
