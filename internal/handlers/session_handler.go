package handlers

import (
	"petstore/internal/middleware"
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler issues and ends shopping sessions.
type SessionHandler struct {
	sessions *services.SessionService
	registry *services.SessionRegistry
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *services.SessionService, registry *services.SessionRegistry, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, registry: registry, logger: orNop(logger)}
}

// RegisterRoutes registers the public session routes.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/session", h.HandleCreateSession)
}

// RegisterProtectedRoutes registers the session routes that need a token.
func (h *SessionHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Delete("/session", h.HandleEndSession)
}

// HandleCreateSession starts a new session.
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	token, sessionID, err := h.sessions.Issue()
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not start session",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":     token,
		"sessionId": sessionID,
	})
}

// HandleEndSession drops the cart and wishlist of the caller's session,
// in memory and in storage.
func (h *SessionHandler) HandleEndSession(c *fiber.Ctx) error {
	sessionID := middleware.SessionID(c)
	h.registry.Purge(sessionID)
	h.logger.Info("session ended", zap.String("session_id", sessionID))
	return c.SendStatus(fiber.StatusNoContent)
}
