package anilist

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

// ============================================
// API RESPONSE STRUCTURES
// ============================================

// PageResponse represents a paginated response
type PageResponse struct {
	Page PageData `json:"Page"`
}

// PageData contains pagination info and media list
type PageData struct {
	PageInfo PageInfo    `json:"pageInfo"`
	Media    []MediaData `json:"media"`
}

// PageInfo contains pagination metadata
type PageInfo struct {
	Total       int  `json:"total"`
	CurrentPage int  `json:"currentPage"`
	LastPage    int  `json:"lastPage"`
	HasNextPage bool `json:"hasNextPage"`
	PerPage     int  `json:"perPage"`
}

// MediaData represents an anime entry from AniList
type MediaData struct {
	ID          int        `json:"id"`
	Title       TitleData  `json:"title"`
	Description *string    `json:"description"`
	Episodes    *int       `json:"episodes"`
	CoverImage  CoverImage `json:"coverImage"`
	BannerImage *string    `json:"bannerImage"`
	Genres      []string   `json:"genres"`
	Favourites  int        `json:"favourites"`
	StartDate   FuzzyDate  `json:"startDate"`
}

// TitleData contains title variants
type TitleData struct {
	English *string `json:"english"`
	Romaji  *string `json:"romaji"`
	Native  *string `json:"native"`
}

// CoverImage contains cover URLs
type CoverImage struct {
	ExtraLarge *string `json:"extraLarge"`
	Large      *string `json:"large"`
}

// FuzzyDate represents a date with optional components
type FuzzyDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// ============================================
// EXTRACTED METADATA STRUCTURES
// ============================================

// ExtractedAnime represents anime metadata ready for the catalog
type ExtractedAnime struct {
	AniListID     int
	Title         string
	Description   string
	ImageCard     string
	ImageDetail   string
	ReleaseDate   time.Time
	TotalEpisodes int
	LikeCount     int
	Genres        []string
}

// ExtractAnime extracts catalog metadata from an AniList media entry
func ExtractAnime(media MediaData) (*ExtractedAnime, error) {
	extracted := &ExtractedAnime{
		AniListID: media.ID,
		LikeCount: media.Favourites,
		Genres:    media.Genres,
	}

	// Title (prefer English, fallback to Romaji, then Native)
	switch {
	case media.Title.English != nil && *media.Title.English != "":
		extracted.Title = *media.Title.English
	case media.Title.Romaji != nil && *media.Title.Romaji != "":
		extracted.Title = *media.Title.Romaji
	case media.Title.Native != nil:
		extracted.Title = *media.Title.Native
	}
	extracted.Title = strings.TrimSpace(extracted.Title)
	if extracted.Title == "" {
		return nil, fmt.Errorf("anime %d has no title", media.ID)
	}

	if media.Description != nil {
		extracted.Description = CleanDescription(*media.Description)
	}

	if media.Episodes != nil {
		extracted.TotalEpisodes = *media.Episodes
	}

	// the card uses the cover, the detail page the banner when there is one
	if media.CoverImage.Large != nil {
		extracted.ImageCard = *media.CoverImage.Large
	}
	if media.CoverImage.ExtraLarge != nil {
		extracted.ImageDetail = *media.CoverImage.ExtraLarge
	}
	if media.BannerImage != nil && *media.BannerImage != "" {
		extracted.ImageDetail = *media.BannerImage
	}
	if extracted.ImageDetail == "" {
		extracted.ImageDetail = extracted.ImageCard
	}

	if t := media.StartDate.ToTime(); t != nil {
		extracted.ReleaseDate = *t
	} else {
		extracted.ReleaseDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return extracted, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanDescription removes HTML tags and decodes entities
func CleanDescription(desc string) string {
	cleaned := tagPattern.ReplaceAllString(desc, "")
	cleaned = html.UnescapeString(cleaned)
	return strings.TrimSpace(cleaned)
}

// GenerateSlug creates a URL-friendly slug from a name
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")

	// Remove special characters, keep only alphanumeric and hyphens
	var result strings.Builder
	for _, char := range slug {
		if (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-' {
			result.WriteRune(char)
		}
	}

	slug = result.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}

// ToTime converts FuzzyDate to time.Time
func (fd *FuzzyDate) ToTime() *time.Time {
	if fd == nil || fd.Year == nil {
		return nil
	}

	month, day := 1, 1
	if fd.Month != nil {
		month = *fd.Month
	}
	if fd.Day != nil {
		day = *fd.Day
	}

	t := time.Date(*fd.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}
