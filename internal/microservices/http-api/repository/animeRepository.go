package repository

import (
	"context"
	"strings"

	"takosu/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type AnimeRepository interface {
	GetByTitle(ctx context.Context, title string) (*models.Anime, error)
	Search(ctx context.Context, query string) ([]models.Anime, error)
	ListCategoriesWithAnime(ctx context.Context) ([]models.Category, error)
	GetEpisode(ctx context.Context, animeTitle string, number int) (*models.Episode, error)
}

type animeRepository struct {
	db *gorm.DB
}

func NewAnimeRepository(db *gorm.DB) AnimeRepository {
	return &animeRepository{db: db}
}

// GetByTitle loads an anime with its categories and episodes in episode order
func (r *animeRepository) GetByTitle(ctx context.Context, title string) (*models.Anime, error) {
	var a models.Anime
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episode_number ASC")
		}).
		Where("title = ?", title).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Search matches titles containing query, case-insensitively. An empty query returns everything.
func (r *animeRepository) Search(ctx context.Context, query string) ([]models.Anime, error) {
	var list []models.Anime
	db := r.db.WithContext(ctx).Model(&models.Anime{})

	query = strings.TrimSpace(query)
	if query != "" {
		db = db.Where("title ILIKE ?", "%"+escapeLike(query)+"%")
	}

	if err := db.Order("title ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListCategoriesWithAnime skips categories that have no anime yet
func (r *animeRepository) ListCategoriesWithAnime(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM anime_categories ac WHERE ac.category_id = categories.id)").
		Preload("Animes", func(db *gorm.DB) *gorm.DB {
			return db.Order("title ASC")
		}).
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *animeRepository) GetEpisode(ctx context.Context, animeTitle string, number int) (*models.Episode, error) {
	var ep models.Episode
	err := r.db.WithContext(ctx).
		Where("anime_title = ? AND episode_number = ?", animeTitle, number).
		First(&ep).Error
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

// escapeLike keeps user input from acting as LIKE wildcards
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
