package database

import (
	"context"
	"fmt"

	"messenger-formbot/internal/models"

	"gorm.io/gorm"
)

const DefaultRecentLimit = 50

// MessageLog stores the transcript of exchanged messages.
type MessageLog struct {
	db *gorm.DB
}

func NewMessageLog(db *gorm.DB) *MessageLog {
	return &MessageLog{db: db}
}

func (l *MessageLog) RecordMessage(ctx context.Context, msg models.Message) error {
	if err := l.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return fmt.Errorf("record message: %w", err)
	}
	return nil
}

// Recent returns the newest messages first. A non-positive limit uses DefaultRecentLimit.
func (l *MessageLog) Recent(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var messages []models.Message
	err := l.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
