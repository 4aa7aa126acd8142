package handlers

import (
	"petstore/internal/middleware"
	"petstore/internal/models"
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WishlistHandler exposes the wishlist of the calling session.
type WishlistHandler struct {
	registry *services.SessionRegistry
	catalog  *services.CatalogService
	logger   *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(registry *services.SessionRegistry, catalog *services.CatalogService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{registry: registry, catalog: catalog, logger: orNop(logger)}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Delete("/", h.HandleClearWishlist)
	wishlistRoutes.Post("/items", h.HandleAddItem)
	wishlistRoutes.Get("/items/:id", h.HandleGetItem)
	wishlistRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

type wishlistView struct {
	Items []models.WishlistEntry `json:"items"`
	Count int                    `json:"count"`
}

func (h *WishlistHandler) wishlist(c *fiber.Ctx) *services.Wishlist {
	return h.registry.Get(middleware.SessionID(c)).Wishlist
}

func newWishlistView(w *services.Wishlist) wishlistView {
	items := w.Items()
	return wishlistView{Items: items, Count: len(items)}
}

// HandleGetWishlist returns the saved products.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	return c.JSON(newWishlistView(h.wishlist(c)))
}

// HandleAddItem saves a catalog product.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if body.ProductID == "" {
		return badRequest(c, "productId is required", nil)
	}

	product, err := h.catalog.Product(c.UserContext(), body.ProductID)
	if err != nil {
		return respondError(c, h.logger, err, "Could not add product to wishlist")
	}

	w := h.wishlist(c)
	w.AddToWishlist(*product)
	return c.Status(fiber.StatusCreated).JSON(newWishlistView(w))
}

// HandleGetItem reports whether a product is saved.
func (h *WishlistHandler) HandleGetItem(c *fiber.Ctx) error {
	productID := c.Params("id")
	return c.JSON(fiber.Map{
		"productId":  productID,
		"inWishlist": h.wishlist(c).IsInWishlist(productID),
	})
}

// HandleRemoveItem removes a saved product.
func (h *WishlistHandler) HandleRemoveItem(c *fiber.Ctx) error {
	w := h.wishlist(c)
	w.RemoveFromWishlist(c.Params("id"))
	return c.JSON(newWishlistView(w))
}

// HandleClearWishlist removes every saved product.
func (h *WishlistHandler) HandleClearWishlist(c *fiber.Ctx) error {
	w := h.wishlist(c)
	w.ClearWishlist()
	return c.JSON(newWishlistView(w))
}
