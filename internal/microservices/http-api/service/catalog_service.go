package service

import (
	"context"
	"errors"

	"takosu/internal/microservices/http-api/dto"
	"takosu/internal/microservices/http-api/repository"
	"takosu/internal/shared"

	"gorm.io/gorm"
)

// CatalogService serves the read-only anime catalog: search, the home page
// categories payload, and detail pages.
type CatalogService interface {
	Search(ctx context.Context, query string) ([]shared.AnimeSummary, error)
	Categories(ctx context.Context) ([]shared.CategoryData, error)
	Detail(ctx context.Context, title string) (*dto.AnimeDetailResponse, error)
}

type catalogService struct {
	animeRepo repository.AnimeRepository
	media     string
}

func NewCatalogService(animeRepo repository.AnimeRepository, media string) CatalogService {
	return &catalogService{animeRepo: animeRepo, media: media}
}

func (s *catalogService) Search(ctx context.Context, query string) ([]shared.AnimeSummary, error) {
	list, err := s.animeRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]shared.AnimeSummary, 0, len(list))
	for i := range list {
		out = append(out, dto.ToSearchResult(&list[i], s.media))
	}
	return out, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]shared.CategoryData, error) {
	categories, err := s.animeRepo.ListCategoriesWithAnime(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]shared.CategoryData, 0, len(categories))
	for i := range categories {
		out = append(out, dto.ToCategoryData(&categories[i], s.media))
	}
	return out, nil
}

func (s *catalogService) Detail(ctx context.Context, title string) (*dto.AnimeDetailResponse, error) {
	a, err := s.animeRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, err
	}
	detail := dto.ToAnimeDetail(a, s.media)
	return &detail, nil
}
