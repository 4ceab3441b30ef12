// Package store keeps a local, append-only log of guarded workflow actions
// in a SQLite database. The log is an audit trail on the operator's machine;
// it is written only after the backend has confirmed the mutation.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ActionEntry is one confirmed workflow mutation
type ActionEntry struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	Action    string    `gorm:"not null;index" json:"action"`
	Entity    string    `gorm:"not null" json:"entity"`
	EntityID  string    `gorm:"not null;index" json:"entityId"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActionLog is a SQLite-backed append-only action log
type ActionLog struct {
	db *gorm.DB
}

// NewActionLog opens (or creates) the log database at the given path
func NewActionLog(path string) (*ActionLog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open action log: %w", err)
	}
	if err := db.AutoMigrate(&ActionEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate action log: %w", err)
	}
	return &ActionLog{db: db}, nil
}

// Record appends one confirmed action
func (l *ActionLog) Record(ctx context.Context, action, entity, entityID, actor string) error {
	entry := ActionEntry{
		ID:       uuid.New(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Actor:    actor,
	}
	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first
func (l *ActionLog) Recent(ctx context.Context, limit int) ([]ActionEntry, error) {
	var entries []ActionEntry
	err := l.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read action log: %w", err)
	}
	return entries, nil
}

// ForEntity returns all entries for one entity, oldest first
func (l *ActionLog) ForEntity(ctx context.Context, entityID string) ([]ActionEntry, error) {
	var entries []ActionEntry
	err := l.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read action log: %w", err)
	}
	return entries, nil
}

// Close releases the underlying database handle
func (l *ActionLog) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
