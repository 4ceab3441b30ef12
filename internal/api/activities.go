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

// ActivityService exposes the activity entity operations
type ActivityService struct {
	client *Client
	logger *zap.Logger
}

// NewActivityService creates an activity entity service
func NewActivityService(client *Client, logger *zap.Logger) *ActivityService {
	return &ActivityService{client: client, logger: logger}
}

// List returns one page of activities, optionally scoped to a related entity
func (s *ActivityService) List(ctx context.Context, relatedTo *domain.RelatedEntityType, relatedID *uuid.UUID, opts ListOptions) ([]domain.Activity, int, error) {
	params := opts.params()
	if relatedTo != nil {
		params.Set("relatedToType", string(*relatedTo))
	}
	if relatedID != nil {
		params.Set("relatedToId", relatedID.String())
	}
	var page contract.Page[domain.Activity]
	if err := s.client.Get(ctx, "/activities", params, &page); err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return page.Items, page.TotalCount, nil
}

// Get fetches a single activity by id
func (s *ActivityService) Get(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	if err := s.client.Get(ctx, "/activities/"+id.String(), nil, &activity); err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

// Create schedules an activity and returns the re-read canonical copy
func (s *ActivityService) Create(ctx context.Context, draft *domain.ActivityDraft) (*domain.Activity, error) {
	var created domain.Activity
	if err := s.client.Post(ctx, "/activities", mapper.ToCreateActivityRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	s.logger.Info("activity created", zap.String("activityID", created.ID.String()))
	return s.Get(ctx, created.ID)
}

// Complete marks a scheduled activity as completed. No body is sent.
func (s *ActivityService) Complete(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var updated domain.Activity
	if err := s.client.Put(ctx, "/activities/"+id.String()+"/complete", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to complete activity: %w", err)
	}
	return s.Get(ctx, id)
}

// Cancel cancels a scheduled activity. No body is sent.
func (s *ActivityService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var updated domain.Activity
	if err := s.client.Put(ctx, "/activities/"+id.String()+"/cancel", nil, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to cancel activity: %w", err)
	}
	return s.Get(ctx, id)
}
