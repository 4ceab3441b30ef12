package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/contract"
	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/mapper"
)

// ClientService exposes the client entity operations
type ClientService struct {
	client *Client
	logger *zap.Logger
}

// NewClientService creates a client entity service
func NewClientService(client *Client, logger *zap.Logger) *ClientService {
	return &ClientService{client: client, logger: logger}
}

// List returns one page of clients unwrapped from the paged envelope,
// together with the total count
func (s *ClientService) List(ctx context.Context, opts ListOptions) ([]domain.Client, int, error) {
	var page contract.Page[domain.Client]
	if err := s.client.Get(ctx, "/clients", opts.params(), &page); err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return page.Items, page.TotalCount, nil
}

// Get fetches a single client by id
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	if err := s.client.Get(ctx, "/clients/"+id.String(), nil, &client); err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// Create creates a client and returns the re-read canonical copy
func (s *ClientService) Create(ctx context.Context, draft *domain.ClientDraft) (*domain.Client, error) {
	var created domain.Client
	if err := s.client.Post(ctx, "/clients", mapper.ToCreateClientRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.logger.Info("client created", zap.String("clientID", created.ID.String()))
	return s.Get(ctx, created.ID)
}
