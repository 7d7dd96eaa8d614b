package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kairosai/internal/model"
)

type ChatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

func (r *ChatMessageRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create chat message failed: %w", err)
	}
	return nil
}

func (r *ChatMessageRepository) GetByID(id uint) (*model.ChatMessage, error) {
	var message model.ChatMessage
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat message failed: %w", err)
	}
	return &message, nil
}

func (r *ChatMessageRepository) ListByProjectID(projectID uint, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var messages []model.ChatMessage
	if err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list chat messages failed: %w", err)
	}
	return messages, nil
}

// ListRecentByProjectID returns the newest messages in chronological order.
func (r *ChatMessageRepository) ListRecentByProjectID(projectID uint, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = 5
	}

	var messages []model.ChatMessage
	if err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list recent chat messages failed: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ChatMessageRepository) DeleteByProjectID(projectID uint) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&model.ChatMessage{}).Error; err != nil {
		return fmt.Errorf("delete chat messages by project failed: %w", err)
	}
	return nil
}
