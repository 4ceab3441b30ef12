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

// PricingRequestService exposes the pricing request entity operations
type PricingRequestService struct {
	client *Client
	logger *zap.Logger
}

// NewPricingRequestService creates a pricing request entity service
func NewPricingRequestService(client *Client, logger *zap.Logger) *PricingRequestService {
	return &PricingRequestService{client: client, logger: logger}
}

// List returns one page of pricing requests
func (s *PricingRequestService) List(ctx context.Context, opts ListOptions) ([]domain.PricingRequest, int, error) {
	var page contract.Page[domain.PricingRequest]
	if err := s.client.Get(ctx, "/pricingrequests", opts.params(), &page); err != nil {
		return nil, 0, fmt.Errorf("failed to list pricing requests: %w", err)
	}
	return page.Items, page.TotalCount, nil
}

// Get fetches a single pricing request by id
func (s *PricingRequestService) Get(ctx context.Context, id uuid.UUID) (*domain.PricingRequest, error) {
	var pr domain.PricingRequest
	if err := s.client.Get(ctx, "/pricingrequests/"+id.String(), nil, &pr); err != nil {
		return nil, fmt.Errorf("failed to get pricing request: %w", err)
	}
	return &pr, nil
}

// Create creates a pricing request and returns the re-read canonical copy
func (s *PricingRequestService) Create(ctx context.Context, draft *domain.PricingRequestDraft) (*domain.PricingRequest, error) {
	var created domain.PricingRequest
	if err := s.client.Post(ctx, "/pricingrequests", mapper.ToCreatePricingRequestRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create pricing request: %w", err)
	}
	s.logger.Info("pricing request created", zap.String("pricingRequestID", created.ID.String()))
	return s.Get(ctx, created.ID)
}

// Assign assigns the pricing request to a user and returns the re-read copy
func (s *PricingRequestService) Assign(ctx context.Context, id, userID uuid.UUID) (*domain.PricingRequest, error) {
	payload := &domain.AssignPayload{UserID: userID}
	var updated domain.PricingRequest
	if err := s.client.Post(ctx, "/pricingrequests/"+id.String()+"/assign", payload, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to assign pricing request: %w", err)
	}
	s.logger.Info("pricing request assigned",
		zap.String("pricingRequestID", id.String()),
		zap.String("userID", userID.String()),
	)
	return s.Get(ctx, id)
}

// Complete marks an in-progress pricing request as completed. No body is sent.
func (s *PricingRequestService) Complete(ctx context.Context, id uuid.UUID) (*domain.PricingRequest, error) {
	var updated domain.PricingRequest
	if err := s.client.Put(ctx, "/pricingrequests/"+id.String()+"/complete", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to complete pricing request: %w", err)
	}
	s.logger.Info("pricing request completed", zap.String("pricingRequestID", id.String()))
	return s.Get(ctx, id)
}
