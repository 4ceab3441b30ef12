package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/mapper"
)

// ContractService exposes the contract entity operations
type ContractService struct {
	client *Client
	logger *zap.Logger
}

// NewContractService creates a contract entity service
func NewContractService(client *Client, logger *zap.Logger) *ContractService {
	return &ContractService{client: client, logger: logger}
}

// ListByClient returns all contracts of a client as a direct array
func (s *ContractService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Contract, error) {
	var contracts []domain.Contract
	params := joinParams("clientId", clientID.String())
	if err := s.client.Get(ctx, "/contracts", params, &contracts); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// Get fetches a single contract by id
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	if err := s.client.Get(ctx, "/contracts/"+id.String(), nil, &contract); err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return &contract, nil
}

// Create creates a contract and returns the re-read canonical copy
func (s *ContractService) Create(ctx context.Context, draft *domain.ContractDraft) (*domain.Contract, error) {
	var created domain.Contract
	if err := s.client.Post(ctx, "/contracts", mapper.ToCreateContractRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	s.logger.Info("contract created",
		zap.String("contractID", created.ID.String()),
		zap.String("clientID", draft.ClientID.String()),
	)
	return s.Get(ctx, created.ID)
}

// Activate transitions a draft contract to Active. No body is sent.
func (s *ContractService) Activate(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var updated domain.Contract
	if err := s.client.Put(ctx, "/contracts/"+id.String()+"/activate", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to activate contract: %w", err)
	}
	s.logger.Info("contract activated", zap.String("contractID", id.String()))
	return s.Get(ctx, id)
}

// Cancel cancels a contract. No body is sent.
func (s *ContractService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var updated domain.Contract
	if err := s.client.Put(ctx, "/contracts/"+id.String()+"/cancel", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to cancel contract: %w", err)
	}
	s.logger.Info("contract cancelled", zap.String("contractID", id.String()))
	return s.Get(ctx, id)
}

// CreateRenewal spawns a renewal child record and returns the re-read
// parent contract
func (s *ContractService) CreateRenewal(ctx context.Context, id uuid.UUID, payload *domain.CreateRenewalPayload) (*domain.Contract, error) {
	var updated domain.Contract
	if err := s.client.Post(ctx, "/contracts/"+id.String()+"/renewals", payload, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to create contract renewal: %w", err)
	}
	s.logger.Info("contract renewal created", zap.String("contractID", id.String()))
	return s.Get(ctx, id)
}
