package handlers

import (
	"petstore/internal/catalog"
	"petstore/internal/models"
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler serves products, filter facets and categories.
type CatalogHandler struct {
	service *services.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: orNop(logger)}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/facets", h.HandleGetFacets)
	productRoutes.Get("/featured", h.HandleGetFeatured)
	productRoutes.Get("/best-selling", h.HandleGetBestSelling)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/pets", h.HandleGetPetCategories)
}

// filterConfig reads a FilterConfig from the query string. Multi-valued
// filters are given by repeating the parameter.
func filterConfig(c *fiber.Ctx) models.FilterConfig {
	cfg := models.DefaultFilterConfig()
	cfg.Search = c.Query("search")
	cfg.PetType = c.Query("petType")
	cfg.Sort = catalog.ParseSortMode(c.Query("sort"))
	cfg.PriceMin = c.QueryFloat("priceMin", models.DefaultPriceMin)
	cfg.PriceMax = c.QueryFloat("priceMax", models.DefaultPriceMax)
	cfg.Categories = queryValues(c, "category")
	cfg.Brands = queryValues(c, "brand")
	cfg.Tags = queryValues(c, "tag")
	return cfg
}

func queryValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if len(v) > 0 {
			values = append(values, string(v))
		}
	}
	return values
}

// HandleGetProducts returns the products visible under the query's filters.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	cfg := filterConfig(c)
	products, err := h.service.VisibleProducts(c.UserContext(), cfg)
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve products")
	}
	return c.JSON(fiber.Map{
		"items":  products,
		"count":  len(products),
		"filter": cfg,
	})
}

// HandleGetFacets returns the available filter options.
func (h *CatalogHandler) HandleGetFacets(c *fiber.Ctx) error {
	facets, err := h.service.Facets(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve filter options")
	}
	return c.JSON(facets)
}

// HandleGetProductByID returns a single product.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleGetFeatured returns the featured products.
func (h *CatalogHandler) HandleGetFeatured(c *fiber.Ctx) error {
	products, err := h.service.Featured(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve featured products")
	}
	return c.JSON(products)
}

// HandleGetBestSelling returns the best-selling products.
func (h *CatalogHandler) HandleGetBestSelling(c *fiber.Ctx) error {
	products, err := h.service.BestSelling(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve best-selling products")
	}
	return c.JSON(products)
}

// HandleGetCategories returns the product categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

// HandleGetPetCategories returns the pet categories.
func (h *CatalogHandler) HandleGetPetCategories(c *fiber.Ctx) error {
	pets, err := h.service.PetCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve pet categories")
	}
	return c.JSON(pets)
}
