package repository

import (
	"context"

	"takosu/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SuggestionRepository interface {
	Create(ctx context.Context, s *models.Suggestion) error
	// ListRecent returns every suggestion, newest first, with its author.
	ListRecent(ctx context.Context) ([]models.Suggestion, error)
}

type suggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, s *models.Suggestion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *suggestionRepository) ListRecent(ctx context.Context) ([]models.Suggestion, error) {
	var list []models.Suggestion
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error
	return list, err
}
