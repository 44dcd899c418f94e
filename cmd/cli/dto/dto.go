package dto

import "takosu/internal/shared"

// Request and response bodies exchanged with the takosu API.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RevokeTokenResponse struct {
	Message string `json:"message"`
}

// RedirectResponse is the answer of /conversations/redirect/ to a programmatic request.
type RedirectResponse struct {
	URL string `json:"url"`
}

type ConversationResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

// EpisodePage is the JSON rendition of an episode page.
type EpisodePage struct {
	Anime            string                 `json:"anime"`
	EpisodeNumber    int                    `json:"episode_number"`
	Title            string                 `json:"title"`
	VideoURL         string                 `json:"video_url,omitempty"`
	InitialTimestamp int64                  `json:"initial_timestamp"`
	Comments         []shared.CommentRecord `json:"comments"`
}

type ProfileResponse struct {
	Username  string                `json:"username"`
	Email     string                `json:"email"`
	Icon      string                `json:"icon"`
	IsAdmin   bool                  `json:"is_admin"`
	Favorites []shared.AnimeSummary `json:"favorite_animes"`
}

type IconResponse struct {
	Icon string `json:"icon"`
}

type FavoriteResponse struct {
	Title    string `json:"title"`
	Favorite bool   `json:"favorite"`
}

type SuggestionResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// SuggestionPage is the suggestion box; Suggestions is empty for non-admins.
type SuggestionPage struct {
	IsAdmin     bool                 `json:"is_admin"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}
