package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/domain"
	"github.com/meridiancrm/salescycle/internal/mapper"
)

// NoteService exposes the note entity operations
type NoteService struct {
	client *Client
	logger *zap.Logger
}

// NewNoteService creates a note entity service
func NewNoteService(client *Client, logger *zap.Logger) *NoteService {
	return &NoteService{client: client, logger: logger}
}

// ListByEntity returns all notes attached to an entity as a direct array
func (s *NoteService) ListByEntity(ctx context.Context, relatedTo domain.RelatedEntityType, relatedID uuid.UUID) ([]domain.Note, error) {
	var notes []domain.Note
	params := joinParams(
		"relatedToType", string(relatedTo),
		"relatedToId", relatedID.String(),
	)
	if err := s.client.Get(ctx, "/notes", params, &notes); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Create attaches a note to an entity. The backend returns the stored note.
func (s *NoteService) Create(ctx context.Context, draft *domain.NoteDraft) (*domain.Note, error) {
	var created domain.Note
	if err := s.client.Post(ctx, "/notes", mapper.ToCreateNoteRequest(draft), &created, nil); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	s.logger.Info("note created", zap.String("noteID", created.ID.String()))
	return &created, nil
}
