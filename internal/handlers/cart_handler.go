package handlers

import (
	"petstore/internal/middleware"
	"petstore/internal/models"
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler exposes the shopping cart of the calling session.
type CartHandler struct {
	registry *services.SessionRegistry
	catalog  *services.CatalogService
	orders   *services.OrderService
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(registry *services.SessionRegistry, catalog *services.CatalogService, orders *services.OrderService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		registry: registry,
		catalog:  catalog,
		orders:   orders,
		logger:   orNop(logger),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/toggle", h.HandleToggle)
	cartRoutes.Get("/quote", h.HandleQuote)
}

type cartView struct {
	Items      []models.CartLineItem `json:"items"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice string                `json:"totalPrice"`
	IsOpen     bool                  `json:"isOpen"`
}

func newCartView(cart *services.Cart) cartView {
	return cartView{
		Items:      cart.Items(),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice().StringFixed(2),
		IsOpen:     cart.IsOpen(),
	}
}

func (h *CartHandler) cart(c *fiber.Ctx) *services.Cart {
	return h.registry.Get(middleware.SessionID(c)).Cart
}

// HandleGetCart returns the cart lines and totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(newCartView(h.cart(c)))
}

// HandleAddItem adds a catalog product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if body.ProductID == "" {
		return badRequest(c, "productId is required", nil)
	}

	product, err := h.catalog.Product(c.UserContext(), body.ProductID)
	if err != nil {
		return respondError(c, h.logger, err, "Could not add product to cart")
	}

	cart := h.cart(c)
	cart.AddToCart(*product, body.Quantity)
	return c.Status(fiber.StatusCreated).JSON(newCartView(cart))
}

// HandleUpdateItem sets the quantity of a line. A quantity below 1 removes it.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if body.Quantity == nil {
		return badRequest(c, "quantity is required", nil)
	}

	cart := h.cart(c)
	productID := c.Params("id")
	if _, ok := cart.Line(productID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product is not in the cart",
		})
	}
	cart.UpdateQuantity(productID, *body.Quantity)
	return c.JSON(newCartView(cart))
}

// HandleRemoveItem removes a line. Removing a missing line succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart := h.cart(c)
	cart.RemoveFromCart(c.Params("id"))
	return c.JSON(newCartView(cart))
}

// HandleClearCart removes every line.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart := h.cart(c)
	cart.ClearCart()
	return c.JSON(newCartView(cart))
}

// HandleToggle flips the cart sidebar visibility.
func (h *CartHandler) HandleToggle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"isOpen": h.cart(c).ToggleVisibility()})
}

// HandleQuote prices the cart for checkout.
func (h *CartHandler) HandleQuote(c *fiber.Ctx) error {
	return c.JSON(h.orders.Quote(h.cart(c)))
}
