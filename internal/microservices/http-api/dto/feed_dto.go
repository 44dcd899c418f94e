package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"takosu/internal/microservices/http-api/models"
	"takosu/internal/shared"
)

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as "5 de octubre de 2025 a las 14:30" in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d de %s de %d a las %s", t.Day(), monthsES[t.Month()-1], t.Year(), t.Format("15:04"))
}

// Stamp is the wire cursor of a record: unix microseconds, the precision
// postgres keeps for timestamptz.
func Stamp(t time.Time) int64 {
	return t.UnixMicro()
}

// ParseAfter reads the "after" query value. Missing or malformed values mean
// "from the beginning".
func ParseAfter(raw string) time.Time {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		v = 0
	}
	return time.UnixMicro(v)
}

// ToMessageRecord converts a help message for the viewer identified by viewerID.
func ToMessageRecord(msg *models.HelpMessage, viewerID string, media string, loc *time.Location) shared.MessageRecord {
	return shared.MessageRecord{
		Timestamp: Stamp(msg.CreatedAt),
		Sender:    msg.Sender.Username,
		Icon:      MediaURL(media, msg.Sender.Icon),
		Message:   msg.Message,
		CreatedAt: FormatDate(msg.CreatedAt, loc),
		IsUser:    msg.SenderID == viewerID,
	}
}

func ToCommentRecord(c *models.Comment, loc *time.Location) shared.CommentRecord {
	return shared.CommentRecord{
		Timestamp: Stamp(c.CreatedAt),
		User:      c.User.Username,
		Comment:   c.Content,
		CreatedAt: FormatDate(c.CreatedAt, loc),
	}
}

// CommentForm is the body of an episode comment submission.
type CommentForm struct {
	Content string `form:"content" json:"content" binding:"max=5000"`
}

// MessageForm is the body of a help chat submission.
type MessageForm struct {
	Message string `form:"message" json:"message" binding:"max=5000"`
}

// ChatPage is the JSON rendition of a help chat page.
type ChatPage struct {
	ConversationID int64                  `json:"conversation_id"`
	Owner          string                 `json:"owner"`
	Messages       []shared.MessageRecord `json:"messages"`
}

// EpisodePage is the JSON rendition of an episode page. InitialTimestamp is
// the stamp of the newest comment already on the page, the comment poller's
// starting cursor.
type EpisodePage struct {
	Anime            string                 `json:"anime"`
	EpisodeNumber    int                    `json:"episode_number"`
	Title            string                 `json:"title"`
	VideoURL         string                 `json:"video_url,omitempty"`
	InitialTimestamp int64                  `json:"initial_timestamp"`
	Comments         []shared.CommentRecord `json:"comments"`
}

// LatestStamp is the largest stamp among comments, 0 when there are none.
func LatestStamp(comments []shared.CommentRecord) int64 {
	var latest int64
	for _, c := range comments {
		if c.Timestamp > latest {
			latest = c.Timestamp
		}
	}
	return latest
}
