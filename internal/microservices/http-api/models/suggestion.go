package models

import "time"

// Suggestion is one entry of the suggestion box. The author is kept when the
// account goes away only as a null user.
type Suggestion struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User      *User     `gorm:"constraint:OnDelete:SET NULL;" json:"user,omitempty"`
	Subject   string    `gorm:"size:150;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Suggestion) TableName() string {
	return "suggestions"
}
