package dto

import (
	"time"

	"takosu/internal/microservices/http-api/models"
	"takosu/internal/shared"
)

// ProfileResponse is the viewer's own account page.
type ProfileResponse struct {
	Username  string                `json:"username"`
	Email     string                `json:"email"`
	Icon      string                `json:"icon"`
	IsAdmin   bool                  `json:"is_admin"`
	Favorites []shared.AnimeSummary `json:"favorite_animes"`
}

func ToProfileResponse(u *models.User, media string) ProfileResponse {
	resp := ProfileResponse{
		Username:  u.Username,
		Email:     u.Email,
		Icon:      MediaURL(media, u.Icon),
		IsAdmin:   u.IsAdmin,
		Favorites: make([]shared.AnimeSummary, 0, len(u.FavoriteAnimes)),
	}
	for i := range u.FavoriteAnimes {
		resp.Favorites = append(resp.Favorites, ToSearchResult(&u.FavoriteAnimes[i], media))
	}
	return resp
}

type IconResponse struct {
	Icon string `json:"icon"`
}

type FavoriteResponse struct {
	Title    string `json:"title"`
	Favorite bool   `json:"favorite"`
}

func FavoriteURL(title string) string {
	return AnimeURL(title) + "favorite/"
}

// SuggestionForm is the body of a suggestion box submission.
type SuggestionForm struct {
	Subject string `form:"subject" json:"subject" binding:"max=150"`
	Message string `form:"message" json:"message" binding:"max=5000"`
}

// AnonymousAuthor names suggestions whose account no longer exists.
const AnonymousAuthor = "Anónimo"

type SuggestionResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func ToSuggestionResponse(s *models.Suggestion, loc *time.Location) SuggestionResponse {
	author := AnonymousAuthor
	if s.User != nil {
		author = s.User.Username
	}
	return SuggestionResponse{
		ID:        s.ID,
		Username:  author,
		Subject:   s.Subject,
		Message:   s.Message,
		CreatedAt: FormatDate(s.CreatedAt, loc),
	}
}

// SuggestionPage is the JSON rendition of the suggestion box. Only admins see
// the submitted suggestions.
type SuggestionPage struct {
	IsAdmin     bool                 `json:"is_admin"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}
