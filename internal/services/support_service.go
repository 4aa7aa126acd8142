package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petstore/internal/models"
	"petstore/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrInvalidStatus is returned when listing tickets with an unknown status.
var ErrInvalidStatus = errors.New("invalid support status")

var supportStatuses = map[string]bool{
	models.SupportStatusAll:      true,
	models.SupportStatusOpen:     true,
	models.SupportStatusPending:  true,
	models.SupportStatusResolved: true,
}

// SupportService handles contact requests.
type SupportService struct {
	repo     repositories.SupportRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSupportService creates a new SupportService.
func NewSupportService(repo repositories.SupportRepository, logger *zap.Logger) *SupportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportService{
		repo:     repo,
		validate: newValidator(),
		logger:   logger,
	}
}

// Validate checks form and returns a message per invalid field. The map is
// empty when the form is valid.
func (s *SupportService) Validate(form models.ContactForm) map[string]string {
	err := validateStruct(s.validate, normalizeContact(form))
	if verr, ok := err.(*ValidationError); ok {
		return verr.Fields
	}
	return map[string]string{}
}

// Submit validates form and forwards it to the support API.
func (s *SupportService) Submit(ctx context.Context, form models.ContactForm) (*models.SupportTicket, error) {
	form = normalizeContact(form)
	if err := validateStruct(s.validate, form); err != nil {
		return nil, err
	}

	ticket, err := s.repo.CreateTicket(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to submit contact request: %w", err)
	}
	s.logger.Info("support ticket created", zap.String("ticket_id", ticket.ID))
	return ticket, nil
}

// Tickets lists tickets by status. An empty status lists all of them.
func (s *SupportService) Tickets(ctx context.Context, status string) ([]models.SupportTicket, error) {
	if status == "" {
		status = models.SupportStatusAll
	}
	if !supportStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.ListTickets(ctx, status)
}

func normalizeContact(form models.ContactForm) models.ContactForm {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)
	return form
}
