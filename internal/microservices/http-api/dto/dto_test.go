package dto

import (
	"testing"
	"time"

	"takosu/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	ts := time.Date(2025, time.October, 5, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "5 de octubre de 2025 a las 14:30", FormatDate(ts, loc))
	assert.Equal(t, "5 de octubre de 2025 a las 20:30", FormatDate(ts, nil))
}

func TestParseAfter(t *testing.T) {
	assert.Equal(t, int64(0), ParseAfter("").UnixMicro())
	assert.Equal(t, int64(0), ParseAfter("abc").UnixMicro())
	assert.Equal(t, int64(0), ParseAfter("-5").UnixMicro())
	assert.Equal(t, int64(1700000000123456), ParseAfter("1700000000123456").UnixMicro())
}

func TestToMessageRecord(t *testing.T) {
	created := time.Date(2025, time.January, 2, 9, 5, 0, 123000, time.UTC)
	msg := &models.HelpMessage{
		SenderID:  "u1",
		Message:   "hola",
		CreatedAt: created,
		Sender:    models.User{Username: "ana", Icon: "users/ana.png"},
	}

	mine := ToMessageRecord(msg, "u1", "/media/", time.UTC)
	assert.True(t, mine.IsUser)
	assert.Equal(t, "ana", mine.Sender)
	assert.Equal(t, "/media/users/ana.png", mine.Icon)
	assert.Equal(t, created.UnixMicro(), mine.Timestamp)
	assert.Equal(t, "2 de enero de 2025 a las 09:05", mine.CreatedAt)

	theirs := ToMessageRecord(msg, "admin", "/media/", time.UTC)
	assert.False(t, theirs.IsUser)
}

func TestToCommentRecord(t *testing.T) {
	created := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
	rec := ToCommentRecord(&models.Comment{
		Content:   "buen capitulo",
		CreatedAt: created,
		User:      models.User{Username: "kenji"},
	}, time.UTC)

	assert.Equal(t, "kenji", rec.User)
	assert.Equal(t, "buen capitulo", rec.Comment)
	assert.Equal(t, created.UnixMicro(), rec.Stamp())
	assert.Equal(t, "31 de diciembre de 2024 a las 23:59", rec.CreatedAt)
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/anime/Kimetsu%20no%20Yaiba/", AnimeURL("Kimetsu no Yaiba"))
	assert.Equal(t, "/watch/Bleach/episode/3/", EpisodeURL("Bleach", 3))
	assert.Equal(t, "/help-chat/12/", ConversationURL(12))
}

func TestMediaURL(t *testing.T) {
	assert.Equal(t, "", MediaURL("/media/", ""))
	assert.Equal(t, "/media/animes/a.jpg", MediaURL("/media/", "/animes/a.jpg"))
	assert.Equal(t, "/media/animes/a.jpg", MediaURL("/media", "animes/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", MediaURL("/media/", "https://cdn.example.com/a.jpg"))
}

func TestToCategoryData(t *testing.T) {
	cat := &models.Category{
		Slug: "accion",
		Name: "Acción",
		Animes: []models.Anime{
			{Title: "Naruto", ImageDetail: "animes/naruto.jpg"},
		},
	}

	data := ToCategoryData(cat, "/media/")
	assert.Equal(t, "accion", data.ID)
	assert.Equal(t, "Acción", data.Name)
	assert.Len(t, data.Animes, 1)
	assert.Equal(t, "/anime/Naruto/", data.Animes[0].URL)
	assert.Equal(t, "/media/animes/naruto.jpg", data.Animes[0].Image)
}

func TestToAnimeDetail(t *testing.T) {
	a := &models.Anime{
		Title:         "Bleach",
		ReleaseDate:   time.Date(2004, time.October, 5, 0, 0, 0, 0, time.UTC),
		TotalEpisodes: 2,
		Categories:    []models.Category{{Name: "Acción"}},
		Episodes: []models.Episode{
			{EpisodeNumber: 1, Title: "Uno"},
			{EpisodeNumber: 2, Title: "Dos"},
		},
	}

	d := ToAnimeDetail(a, "/media/")
	assert.Equal(t, "2004-10-05", d.ReleaseDate)
	assert.Equal(t, []string{"Acción"}, d.Categories)
	assert.Len(t, d.Episodes, 2)
	assert.Equal(t, "/watch/Bleach/episode/2/", d.Episodes[1].URL)
}
