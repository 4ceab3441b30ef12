package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/mapper"
)

// ContactService exposes the contact entity operations
type ContactService struct {
	client *Client
	logger *zap.Logger
}

// NewContactService creates a contact entity service
func NewContactService(client *Client, logger *zap.Logger) *ContactService {
	return &ContactService{client: client, logger: logger}
}

// ListByClient returns all contacts for a client. This endpoint returns a
// direct array, not a paged envelope.
func (s *ContactService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Contact, error) {
	var contacts []domain.Contact
	params := joinParams("clientId", clientID.String())
	if err := s.client.Get(ctx, "/contacts", params, &contacts); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// Get fetches a single contact by id
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	if err := s.client.Get(ctx, "/contacts/"+id.String(), nil, &contact); err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

// Create creates a contact and returns the re-read canonical copy
func (s *ContactService) Create(ctx context.Context, draft *domain.ContactDraft) (*domain.Contact, error) {
	var created domain.Contact
	if err := s.client.Post(ctx, "/contacts", mapper.ToCreateContactRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	s.logger.Info("contact created",
		zap.String("contactID", created.ID.String()),
		zap.String("clientID", draft.ClientID.String()),
	)
	return s.Get(ctx, created.ID)
}
