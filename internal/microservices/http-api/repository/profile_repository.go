package repository

import (
	"context"

	"takosu/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const favoritesTable = "user_favorite_animes"

// ProfileRepository covers what a user edits about their own account.
type ProfileRepository interface {
	// GetProfile loads a user with their favorite anime ordered by title.
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateIcon(ctx context.Context, userID, icon string) error

	AddFavorite(ctx context.Context, userID, animeTitle string) error
	// RemoveFavorite reports whether the anime was a favorite.
	RemoveFavorite(ctx context.Context, userID, animeTitle string) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("FavoriteAnimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("animes.title ASC")
		}).
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *profileRepository) UpdateIcon(ctx context.Context, userID, icon string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("icon", icon)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddFavorite writes the join row directly; appending through the association
// would upsert the anime row as well.
func (r *profileRepository) AddFavorite(ctx context.Context, userID, animeTitle string) error {
	return r.db.WithContext(ctx).
		Table(favoritesTable).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]any{"user_id": userID, "anime_title": animeTitle}).Error
}

func (r *profileRepository) RemoveFavorite(ctx context.Context, userID, animeTitle string) (bool, error) {
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM "+favoritesTable+" WHERE user_id = ? AND anime_title = ?", userID, animeTitle)
	return res.RowsAffected > 0, res.Error
}
