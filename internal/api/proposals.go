package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/mapper"
)

// ProposalService exposes the proposal entity operations and its lifecycle
// transitions (submit, approve, reject)
type ProposalService struct {
	client *Client
	logger *zap.Logger
}

// NewProposalService creates a proposal entity service
func NewProposalService(client *Client, logger *zap.Logger) *ProposalService {
	return &ProposalService{client: client, logger: logger}
}

// ListByOpportunity returns all proposals of an opportunity as a direct array
func (s *ProposalService) ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]domain.Proposal, error) {
	var proposals []domain.Proposal
	params := joinParams("opportunityId", opportunityID.String())
	if err := s.client.Get(ctx, "/proposals", params, &proposals); err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

// Get fetches a single proposal by id
func (s *ProposalService) Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	if err := s.client.Get(ctx, "/proposals/"+id.String(), nil, &proposal); err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return &proposal, nil
}

// Create creates a draft proposal and returns the re-read canonical copy
func (s *ProposalService) Create(ctx context.Context, draft *domain.ProposalDraft) (*domain.Proposal, error) {
	var created domain.Proposal
	if err := s.client.Post(ctx, "/proposals", mapper.ToCreateProposalRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	s.logger.Info("proposal created",
		zap.String("proposalID", created.ID.String()),
		zap.String("opportunityID", draft.OpportunityID.String()),
	)
	return s.Get(ctx, created.ID)
}

// Submit transitions a draft proposal to Submitted. No body is sent.
func (s *ProposalService) Submit(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var updated domain.Proposal
	if err := s.client.Put(ctx, "/proposals/"+id.String()+"/submit", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to submit proposal: %w", err)
	}
	s.logger.Info("proposal submitted", zap.String("proposalID", id.String()))
	return s.Get(ctx, id)
}

// Approve transitions a submitted proposal to Approved. No body is sent.
func (s *ProposalService) Approve(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var updated domain.Proposal
	if err := s.client.Put(ctx, "/proposals/"+id.String()+"/approve", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to approve proposal: %w", err)
	}
	s.logger.Info("proposal approved", zap.String("proposalID", id.String()))
	return s.Get(ctx, id)
}

// Reject transitions a submitted proposal to Rejected. The reason is
// mandatory and always transmitted with the call.
func (s *ProposalService) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Proposal, error) {
	payload := &domain.RejectProposalPayload{Reason: reason}
	var updated domain.Proposal
	if err := s.client.Put(ctx, "/proposals/"+id.String()+"/reject", payload, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to reject proposal: %w", err)
	}
	s.logger.Info("proposal rejected", zap.String("proposalID", id.String()))
	return s.Get(ctx, id)
}
