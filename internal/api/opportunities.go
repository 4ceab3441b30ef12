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

// OpportunityService exposes the opportunity entity operations
type OpportunityService struct {
	client *Client
	logger *zap.Logger
}

// NewOpportunityService creates an opportunity entity service
func NewOpportunityService(client *Client, logger *zap.Logger) *OpportunityService {
	return &OpportunityService{client: client, logger: logger}
}

// List returns one page of opportunities, optionally filtered by client
func (s *OpportunityService) List(ctx context.Context, clientID *uuid.UUID, opts ListOptions) ([]domain.Opportunity, int, error) {
	params := opts.params()
	if clientID != nil {
		params.Set("clientId", clientID.String())
	}
	var page contract.Page[domain.Opportunity]
	if err := s.client.Get(ctx, "/opportunities", params, &page); err != nil {
		return nil, 0, fmt.Errorf("failed to list opportunities: %w", err)
	}
	return page.Items, page.TotalCount, nil
}

// Get fetches a single opportunity by id
func (s *OpportunityService) Get(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	if err := s.client.Get(ctx, "/opportunities/"+id.String(), nil, &opp); err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return &opp, nil
}

// Create creates an opportunity and returns the re-read canonical copy
func (s *OpportunityService) Create(ctx context.Context, draft *domain.OpportunityDraft) (*domain.Opportunity, error) {
	var created domain.Opportunity
	if err := s.client.Post(ctx, "/opportunities", mapper.ToCreateOpportunityRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	s.logger.Info("opportunity created",
		zap.String("opportunityID", created.ID.String()),
		zap.String("stage", string(created.Stage)),
	)
	return s.Get(ctx, created.ID)
}

// ChangeStage transitions an opportunity to a new stage. The loss reason is
// mandatory when the target stage is Closed Lost; the contract layer rejects
// the payload before transmission otherwise.
func (s *OpportunityService) ChangeStage(ctx context.Context, id uuid.UUID, stage domain.OpportunityStage, notes, lossReason string) (*domain.Opportunity, error) {
	payload := mapper.ToChangeStagePayload(stage, notes, lossReason)
	var updated domain.Opportunity
	if err := s.client.Put(ctx, "/opportunities/"+id.String()+"/stage", payload, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to change opportunity stage: %w", err)
	}
	s.logger.Info("opportunity stage changed",
		zap.String("opportunityID", id.String()),
		zap.String("toStage", string(stage)),
	)
	return s.Get(ctx, id)
}

// Assign assigns the opportunity to a user and returns the re-read copy
func (s *OpportunityService) Assign(ctx context.Context, id, userID uuid.UUID) (*domain.Opportunity, error) {
	payload := &domain.AssignPayload{UserID: userID}
	var updated domain.Opportunity
	if err := s.client.Post(ctx, "/opportunities/"+id.String()+"/assign", payload, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to assign opportunity: %w", err)
	}
	return s.Get(ctx, id)
}

// StageHistory returns the append-only stage transition audit trail
func (s *OpportunityService) StageHistory(ctx context.Context, id uuid.UUID) ([]domain.StageHistoryEntry, error) {
	var entries []domain.StageHistoryEntry
	if err := s.client.Get(ctx, "/opportunities/"+id.String()+"/stage-history", nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to get stage history: %w", err)
	}
	return entries, nil
}
