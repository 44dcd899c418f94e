package models

import "time"

// Category groups anime on the home page carousel. Slug is the stable id
// shared by the category heading and its entry in the categories payload.
type Category struct {
	ID     int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug   string  `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Name   string  `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Animes []Anime `gorm:"many2many:anime_categories;constraint:OnDelete:CASCADE;" json:"animes,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// Anime is keyed by its title, which is also its detail page path.
type Anime struct {
	Title         string     `gorm:"primaryKey;size:255" json:"title"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	ImageDetail   string     `json:"image_detail"`
	ImageCard     string     `json:"image_card"`
	ReleaseDate   time.Time  `gorm:"type:date;not null" json:"release_date"`
	TotalEpisodes int        `gorm:"not null" json:"total_episodes"`
	LikeCount     int        `gorm:"not null;default:0" json:"like_count"`
	Categories    []Category `gorm:"many2many:anime_categories;constraint:OnDelete:CASCADE;" json:"categories,omitempty"`
	Episodes      []Episode  `gorm:"foreignKey:AnimeTitle;constraint:OnDelete:CASCADE;" json:"episodes,omitempty"`
}

func (Anime) TableName() string {
	return "animes"
}

type Episode struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AnimeTitle    string    `gorm:"size:255;not null;uniqueIndex:idx_episode_number" json:"anime_title"`
	EpisodeNumber int       `gorm:"not null;uniqueIndex:idx_episode_number" json:"episode_number"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	ReleaseDate   time.Time `gorm:"type:date;not null" json:"release_date"`
	VideoURL      string    `json:"video_url,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
}

func (Episode) TableName() string {
	return "episodes"
}
