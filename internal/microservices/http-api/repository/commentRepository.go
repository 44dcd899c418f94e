package repository

import (
	"context"
	"fmt"
	"time"

	"takosu/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByEpisode(ctx context.Context, episodeID int64) ([]models.Comment, error)
	ListByEpisodeAfter(ctx context.Context, episodeID int64, after time.Time) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListByEpisode returns every comment of an episode, oldest first
func (r *commentRepository) ListByEpisode(ctx context.Context, episodeID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("episode_id = ?", episodeID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByEpisodeAfter returns the comments created strictly after the given instant, oldest first
func (r *commentRepository) ListByEpisodeAfter(ctx context.Context, episodeID int64, after time.Time) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("episode_id = ? AND created_at > ?", episodeID, after).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
