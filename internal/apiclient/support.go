package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"petstore/internal/models"
	"petstore/internal/repositories"
)

var (
	_ repositories.ProductRepository = (*CatalogAPI)(nil)
	_ repositories.ContentRepository = (*CatalogAPI)(nil)
	_ repositories.OrderRepository   = (*OrderAPI)(nil)
	_ repositories.SupportRepository = (*OrderAPI)(nil)
)

type remoteTicket struct {
	models.SupportTicket
	AltID string `json:"id"`
}

func (t remoteTicket) normalize() models.SupportTicket {
	ticket := t.SupportTicket
	if ticket.ID == "" {
		ticket.ID = t.AltID
	}
	if ticket.Status == "" {
		ticket.Status = models.SupportStatusOpen
	}
	return ticket
}

// CreateTicket submits a contact request.
func (api *OrderAPI) CreateTicket(ctx context.Context, form models.ContactForm) (*models.SupportTicket, error) {
	body, err := api.c.post(ctx, api.c.url(nil, "support"), form)
	if err != nil {
		return nil, err
	}

	var remote remoteTicket
	if err := json.Unmarshal(body, &remote); err != nil {
		return nil, fmt.Errorf("failed to decode support ticket: %w", err)
	}
	ticket := remote.normalize()
	if ticket.Email == "" {
		ticket.FirstName = form.FirstName
		ticket.LastName = form.LastName
		ticket.Email = form.Email
		ticket.Subject = form.Subject
		ticket.Message = form.Message
	}
	return &ticket, nil
}

// ListTickets fetches the support tickets with status. "all" and the empty
// status list every ticket.
func (api *OrderAPI) ListTickets(ctx context.Context, status string) ([]models.SupportTicket, error) {
	var query url.Values
	if status != "" && status != models.SupportStatusAll {
		query = url.Values{"status": {status}}
	}
	remote, err := getList[remoteTicket](ctx, api.c, api.c.url(query, "support"))
	if err != nil {
		return nil, err
	}
	tickets := make([]models.SupportTicket, 0, len(remote))
	for _, t := range remote {
		tickets = append(tickets, t.normalize())
	}
	return tickets, nil
}
