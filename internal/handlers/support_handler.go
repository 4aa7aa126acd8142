package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"petstore/internal/models"
	"petstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const sseHeartbeat = 15 * time.Second

// SupportHandler handles the contact form and the support inbox.
type SupportHandler struct {
	service *services.SupportService
	hub     *services.SupportHub
	logger  *zap.Logger
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(service *services.SupportService, hub *services.SupportHub, logger *zap.Logger) *SupportHandler {
	return &SupportHandler{service: service, hub: hub, logger: orNop(logger)}
}

// RegisterRoutes registers the support routes with the Fiber app.
func (h *SupportHandler) RegisterRoutes(router fiber.Router) {
	supportRoutes := router.Group("/support")
	supportRoutes.Get("/", h.HandleGetTickets)
	supportRoutes.Post("/", h.HandleSubmit)
	supportRoutes.Post("/validate", h.HandleValidate)
	supportRoutes.Get("/events", h.HandleEvents)
}

// HandleValidate checks a contact form without submitting it.
func (h *SupportHandler) HandleValidate(c *fiber.Ctx) error {
	var form models.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	errs := h.service.Validate(form)
	return c.JSON(fiber.Map{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

// HandleSubmit forwards a contact form to the support API.
func (h *SupportHandler) HandleSubmit(c *fiber.Ctx) error {
	var form models.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	ticket, err := h.service.Submit(c.UserContext(), form)
	if err != nil {
		return respondError(c, h.logger, err, "Could not send message")
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// HandleGetTickets lists support tickets, optionally by status.
func (h *SupportHandler) HandleGetTickets(c *fiber.Ctx) error {
	tickets, err := h.service.Tickets(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, h.logger, err, "Could not retrieve support tickets")
	}
	return c.JSON(tickets)
}

// HandleEvents streams support events as Server-Sent Events until the client
// goes away or the hub shuts down.
func (h *SupportHandler) HandleEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	events, unsubscribe := h.hub.Subscribe()
	logger := h.logger

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		heartbeat := time.NewTicker(sseHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					logger.Error("failed to encode support event", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				logger.Debug("support event stream closed", zap.Error(err))
				return
			}
		}
	}))
	return nil
}
