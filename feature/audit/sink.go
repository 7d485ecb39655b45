package audit

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Sink appends entries to the administrative audit trail. Entries written
// inside a caller's transaction commit or roll back with it, so a failed
// operation never leaves a dangling "it happened" record.
type Sink struct{}

// NewSink creates an audit sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append writes one audit entry. Failures propagate to the caller; an audit
// trail that drops entries silently is worse than a failed operation.
func (s *Sink) Append(ctx context.Context, tx *gorm.DB, userID uint, actionType, entityType, description string) error {
	entry := ActionLog{
		UserID:      userID,
		ActionType:  actionType,
		EntityType:  entityType,
		Description: description,
		Timestamp:   time.Now(),
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, capped at limit.
func (s *Sink) Recent(ctx context.Context, db *gorm.DB, limit int) ([]ActionLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var entries []ActionLog
	err := db.WithContext(ctx).
		Order("action_id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
