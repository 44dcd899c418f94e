package service

import (
	"context"
	"errors"
	"testing"

	"takosu/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCatalogService_Search(t *testing.T) {
	repo := new(MockAnimeRepository)
	svc := NewCatalogService(repo, "/media/")

	repo.On("Search", mock.Anything, "nar").Return([]models.Anime{
		{Title: "Naruto", ImageCard: "animes/naruto_card.jpg", Description: "ninjas", TotalEpisodes: 220},
	}, nil)

	results, err := svc.Search(context.Background(), "nar")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/anime/Naruto/", results[0].URL)
	assert.Equal(t, "/media/animes/naruto_card.jpg", results[0].Image)
	assert.Equal(t, 220, results[0].TotalEpisodes)
}

func TestCatalogService_SearchError(t *testing.T) {
	repo := new(MockAnimeRepository)
	svc := NewCatalogService(repo, "/media/")
	repo.On("Search", mock.Anything, "x").Return(nil, errors.New("db down"))

	_, err := svc.Search(context.Background(), "x")
	assert.Error(t, err)
}

func TestCatalogService_Categories(t *testing.T) {
	repo := new(MockAnimeRepository)
	svc := NewCatalogService(repo, "/media/")

	repo.On("ListCategoriesWithAnime", mock.Anything).Return([]models.Category{
		{Slug: "accion", Name: "Acción", Animes: []models.Anime{{Title: "Bleach"}}},
		{Slug: "romance", Name: "Romance", Animes: []models.Anime{{Title: "Toradora"}, {Title: "Clannad"}}},
	}, nil)

	cats, err := svc.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "romance", cats[1].ID)
	assert.Len(t, cats[1].Animes, 2)
}

func TestCatalogService_DetailNotFound(t *testing.T) {
	repo := new(MockAnimeRepository)
	svc := NewCatalogService(repo, "/media/")
	repo.On("GetByTitle", mock.Anything, "Nada").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Detail(context.Background(), "Nada")
	assert.ErrorIs(t, err, ErrAnimeNotFound)
}
