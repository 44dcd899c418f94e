package models

import "time"

// Conversation is a help chat between one user and the site admins.
type Conversation struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	User     User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Messages []HelpMessage `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE;" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type HelpMessage struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID int64     `gorm:"not null;index:idx_help_messages_conversation_created" json:"conversation_id"`
	SenderID       string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID    *string   `gorm:"type:uuid" json:"recipient_id,omitempty"` // nil = every admin
	Message        string    `gorm:"type:text;not null" json:"message"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_help_messages_conversation_created" json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;" json:"sender,omitempty"`
}

func (HelpMessage) TableName() string {
	return "help_messages"
}
