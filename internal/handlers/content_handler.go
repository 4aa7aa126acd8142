package handlers

import (
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContentHandler serves the landing page and editorial pages.
type ContentHandler struct {
	service *services.ContentService
	logger  *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service *services.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{service: service, logger: orNop(logger)}
}

// RegisterRoutes registers the content routes with the Fiber app.
func (h *ContentHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/home", h.HandleGetHome)
	router.Get("/team", h.HandleGetTeam)
	router.Get("/testimonials", h.HandleGetTestimonials)
	router.Get("/blog", h.HandleGetBlog)
}

// HandleGetHome returns every landing page section. Sections fail on their own.
func (h *ContentHandler) HandleGetHome(c *fiber.Ctx) error {
	return c.JSON(h.service.Home(c.UserContext()))
}

// HandleGetTeam returns the team members.
func (h *ContentHandler) HandleGetTeam(c *fiber.Ctx) error {
	team, err := h.service.Team(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve team members")
	}
	return c.JSON(team)
}

// HandleGetTestimonials returns the testimonials.
func (h *ContentHandler) HandleGetTestimonials(c *fiber.Ctx) error {
	testimonials, err := h.service.Testimonials(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve testimonials")
	}
	return c.JSON(testimonials)
}

// HandleGetBlog returns the blog posts.
func (h *ContentHandler) HandleGetBlog(c *fiber.Ctx) error {
	posts, err := h.service.BlogPosts(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve blog posts")
	}
	return c.JSON(posts)
}
