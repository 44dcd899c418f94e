package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"takosu/internal/microservices/http-api/models"
	"takosu/internal/shared"
)

// AnimeURL is the detail page path of an anime.
func AnimeURL(title string) string {
	return "/anime/" + url.PathEscape(title) + "/"
}

// EpisodeURL is the watch page path of one episode.
func EpisodeURL(title string, number int) string {
	return "/watch/" + url.PathEscape(title) + "/episode/" + strconv.Itoa(number) + "/"
}

// MediaURL joins a stored media path onto the public media prefix.
// Absolute URLs and empty paths pass through.
func MediaURL(prefix, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}

// ToSearchResult is the full summary served by the search endpoint.
func ToSearchResult(a *models.Anime, media string) shared.AnimeSummary {
	return shared.AnimeSummary{
		Title:         a.Title,
		Image:         MediaURL(media, a.ImageCard),
		URL:           AnimeURL(a.Title),
		Description:   a.Description,
		TotalEpisodes: a.TotalEpisodes,
	}
}

// ToCategoryData builds one categories payload entry keyed by the category slug.
func ToCategoryData(c *models.Category, media string) shared.CategoryData {
	animes := make([]shared.AnimeSummary, 0, len(c.Animes))
	for i := range c.Animes {
		a := &c.Animes[i]
		animes = append(animes, shared.AnimeSummary{
			Title: a.Title,
			Image: MediaURL(media, a.ImageDetail),
			URL:   AnimeURL(a.Title),
		})
	}
	return shared.CategoryData{ID: c.Slug, Name: c.Name, Animes: animes}
}

type EpisodeResponse struct {
	Number      int    `json:"episode_number"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	VideoURL    string `json:"video_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	URL         string `json:"url"`
}

type AnimeDetailResponse struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Image         string            `json:"image"`
	ReleaseDate   string            `json:"release_date"`
	TotalEpisodes int               `json:"total_episodes"`
	LikeCount     int               `json:"like_count"`
	Categories    []string          `json:"categories"`
	Episodes      []EpisodeResponse `json:"episodes"`
}

func ToAnimeDetail(a *models.Anime, media string) AnimeDetailResponse {
	resp := AnimeDetailResponse{
		Title:         a.Title,
		Description:   a.Description,
		Image:         MediaURL(media, a.ImageDetail),
		ReleaseDate:   a.ReleaseDate.Format(time.DateOnly),
		TotalEpisodes: a.TotalEpisodes,
		LikeCount:     a.LikeCount,
		Categories:    make([]string, 0, len(a.Categories)),
		Episodes:      make([]EpisodeResponse, 0, len(a.Episodes)),
	}
	for _, c := range a.Categories {
		resp.Categories = append(resp.Categories, c.Name)
	}
	for _, ep := range a.Episodes {
		resp.Episodes = append(resp.Episodes, EpisodeResponse{
			Number:      ep.EpisodeNumber,
			Title:       ep.Title,
			ReleaseDate: ep.ReleaseDate.Format(time.DateOnly),
			VideoURL:    MediaURL(media, ep.VideoURL),
			ImageURL:    MediaURL(media, ep.ImageURL),
			URL:         EpisodeURL(a.Title, ep.EpisodeNumber),
		})
	}
	return resp
}

// ConversationResponse is one row of the conversation list.
type ConversationResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

func ConversationURL(id int64) string {
	return "/help-chat/" + strconv.FormatInt(id, 10) + "/"
}

func ToConversationResponse(c *models.Conversation) ConversationResponse {
	return ConversationResponse{ID: c.ID, Username: c.User.Username, URL: ConversationURL(c.ID)}
}
