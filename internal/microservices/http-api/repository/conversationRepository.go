package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takosu/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	GetOrCreateForUser(ctx context.Context, userID string) (*models.Conversation, error)
	ListAll(ctx context.Context) ([]models.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)

	CreateMessage(ctx context.Context, msg *models.HelpMessage) error
	ListMessages(ctx context.Context, conversationID int64) ([]models.HelpMessage, error)
	ListMessagesAfter(ctx context.Context, conversationID int64, after time.Time) ([]models.HelpMessage, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).Preload("User").First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetOrCreateForUser returns the user's oldest conversation, creating one if none exists
func (r *conversationRepository) GetOrCreateForUser(ctx context.Context, userID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).Order("id ASC").First(&conv).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		conv = models.Conversation{UserID: userID}
		return tx.Create(&conv).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get or create conversation: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) ListAll(ctx context.Context) ([]models.Conversation, error) {
	var list []models.Conversation
	if err := r.db.WithContext(ctx).Preload("User").Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var list []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *models.HelpMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create help message: %w", err)
	}
	return nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]models.HelpMessage, error) {
	var msgs []models.HelpMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListMessagesAfter returns messages created strictly after the given instant, oldest first
func (r *conversationRepository) ListMessagesAfter(ctx context.Context, conversationID int64, after time.Time) ([]models.HelpMessage, error) {
	var msgs []models.HelpMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND created_at > ?", conversationID, after).
		Preload("Sender").
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
