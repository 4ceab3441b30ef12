package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/domain"
)

// UserService exposes the read-only user lookups backing assignment pickers
type UserService struct {
	client *Client
	logger *zap.Logger
}

// NewUserService creates a user lookup service
func NewUserService(client *Client, logger *zap.Logger) *UserService {
	return &UserService{client: client, logger: logger}
}

// List returns all assignable users as a direct array
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.client.Get(ctx, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get fetches a single user by id
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := s.client.Get(ctx, "/users/"+id.String(), nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
