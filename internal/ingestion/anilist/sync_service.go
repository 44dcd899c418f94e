package anilist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"takosu/internal/microservices/http-api/models"
)

// Store writes imported anime into the catalog.
type Store interface {
	// UpsertAnime creates or refreshes an anime, links it to one category per
	// genre and adds any missing episode rows. It reports whether the anime is new.
	UpsertAnime(ctx context.Context, anime *ExtractedAnime) (bool, error)
}

// Fetcher returns one page of anime.
type Fetcher interface {
	GetAnime(ctx context.Context, page, perPage int) (*PageResponse, error)
}

// SyncConfig holds configuration for the sync service
type SyncConfig struct {
	Limit       int // anime to import per run
	WorkerCount int
	PageDelay   time.Duration
}

// SyncResult summarizes one import run
type SyncResult struct {
	Created int64
	Updated int64
	Failed  int64
}

// SyncService imports the most popular anime from AniList into the catalog
type SyncService struct {
	client Fetcher
	store  Store
	config SyncConfig
	logger *slog.Logger
}

// NewSyncService creates a new sync service instance
func NewSyncService(client Fetcher, store Store, config SyncConfig, logger *slog.Logger) *SyncService {
	if config.WorkerCount == 0 {
		config.WorkerCount = 10
	}
	if config.Limit == 0 {
		config.Limit = 150
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{client: client, store: store, config: config, logger: logger}
}

// Run imports up to Limit anime, page by page, storing them concurrently.
func (s *SyncService) Run(ctx context.Context) (SyncResult, error) {
	var created, updated, failed atomic.Int64

	pool := NewWorkerPool(ctx, s.config.WorkerCount, s.logger)
	pool.Start()

	perPage := min(MaxPerPage, s.config.Limit)
	queued := 0

	for page := 1; queued < s.config.Limit; page++ {
		if err := ctx.Err(); err != nil {
			pool.Shutdown()
			return SyncResult{}, err
		}

		response, err := s.client.GetAnime(ctx, page, perPage)
		if err != nil {
			pool.Shutdown()
			return SyncResult{}, err
		}
		s.logger.Info("anilist page fetched", "page", page, "anime", len(response.Page.Media))

		for _, media := range response.Page.Media {
			if queued == s.config.Limit {
				break
			}
			queued++
			pool.Submit(func(ctx context.Context) error {
				isNew, err := s.process(ctx, media)
				switch {
				case err != nil:
					failed.Add(1)
					return fmt.Errorf("anime %d: %w", media.ID, err)
				case isNew:
					created.Add(1)
				default:
					updated.Add(1)
				}
				return nil
			})
		}

		if !response.Page.PageInfo.HasNextPage || len(response.Page.Media) == 0 {
			break
		}

		select {
		case <-ctx.Done():
		case <-time.After(s.config.PageDelay):
		}
	}

	pool.Wait()

	result := SyncResult{Created: created.Load(), Updated: updated.Load(), Failed: failed.Load()}
	s.logger.Info("anilist sync completed", "created", result.Created, "updated", result.Updated, "failed", result.Failed)
	return result, ctx.Err()
}

// Schedule runs an import every interval until ctx is done.
func (s *SyncService) Schedule(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("scheduled anilist sync failed", "error", err)
			}
		}
	}
}

func (s *SyncService) process(ctx context.Context, media MediaData) (bool, error) {
	extracted, err := ExtractAnime(media)
	if err != nil {
		return false, fmt.Errorf("failed to extract metadata: %w", err)
	}
	isNew, err := s.store.UpsertAnime(ctx, extracted)
	if err != nil {
		return false, fmt.Errorf("failed to store anime: %w", err)
	}
	s.logger.Debug("anime synced", "title", extracted.Title, "anilist_id", extracted.AniListID, "new", isNew)
	return isNew, nil
}

// GormStore is the catalog Store backed by the site database
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) UpsertAnime(ctx context.Context, extracted *ExtractedAnime) (bool, error) {
	isNew := false
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Anime
		err := tx.Where("title = ?", extracted.Title).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			isNew = true
		case err != nil:
			return fmt.Errorf("database error: %w", err)
		}

		anime := models.Anime{
			Title:         extracted.Title,
			Description:   extracted.Description,
			ImageDetail:   extracted.ImageDetail,
			ImageCard:     extracted.ImageCard,
			ReleaseDate:   extracted.ReleaseDate,
			TotalEpisodes: extracted.TotalEpisodes,
			LikeCount:     extracted.LikeCount,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "image_detail", "image_card", "release_date", "total_episodes", "like_count"}),
		}).Omit(clause.Associations).Create(&anime).Error; err != nil {
			return fmt.Errorf("failed to upsert anime: %w", err)
		}

		categories := make([]models.Category, 0, len(extracted.Genres))
		for _, genre := range extracted.Genres {
			var category models.Category
			slug := GenerateSlug(genre)
			if slug == "" {
				continue
			}
			if err := tx.Where(models.Category{Slug: slug}).
				Attrs(models.Category{Name: genre}).
				FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to upsert category %q: %w", genre, err)
			}
			categories = append(categories, category)
		}
		if len(categories) > 0 {
			if err := tx.Model(&anime).Association("Categories").Append(categories); err != nil {
				return fmt.Errorf("failed to link categories: %w", err)
			}
		}

		if extracted.TotalEpisodes == 0 {
			return nil
		}
		episodes := make([]models.Episode, 0, extracted.TotalEpisodes)
		for n := 1; n <= extracted.TotalEpisodes; n++ {
			episodes = append(episodes, models.Episode{
				AnimeTitle:    extracted.Title,
				EpisodeNumber: n,
				Title:         "Episodio " + strconv.Itoa(n),
				ReleaseDate:   extracted.ReleaseDate,
			})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(episodes, 100).Error; err != nil {
			return fmt.Errorf("failed to add episodes: %w", err)
		}
		return nil
	})
	return isNew, err
}
