package shared

// shared types across the application
// 1st: feed records returned by the long-poll endpoints (chat + comments)
// 2nd: anime summaries used by search and the carousel
// 3rd: auth claims structure for JWT authentication in HTTP API

// XHRHeader is the programmatic-request marker. The server answers with JSON
// instead of a full page when it is present.
const (
	XHRHeader = "X-Requested-With"
	XHRValue  = "XMLHttpRequest"
)

// MessageRecord is one help-chat message as returned by the chat poll.
type MessageRecord struct {
	Timestamp int64  `json:"timestamp"`  // unix microseconds, used as the cursor
	Sender    string `json:"sender"`     // username of the sender
	Icon      string `json:"icon"`       // avatar URL, may be empty
	Message   string `json:"message"`    // message body
	CreatedAt string `json:"created_at"` // display string
	IsUser    bool   `json:"is_user"`    // true when the requesting user sent it
}

func (m MessageRecord) Stamp() int64 { return m.Timestamp }

// CommentRecord is one episode comment as returned by the comment poll.
type CommentRecord struct {
	Timestamp int64  `json:"timestamp"`
	User      string `json:"user"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

func (c CommentRecord) Stamp() int64 { return c.Timestamp }

// AnimeSummary is the read-only view of an anime used by search results and
// by the random pick widgets. Search fills every field, the categories payload
// only title/image/url.
type AnimeSummary struct {
	Title         string `json:"title"`
	Image         string `json:"image"`
	URL           string `json:"url"`
	Description   string `json:"description,omitempty"`
	TotalEpisodes int    `json:"total_episodes,omitempty"`
}

// CategoryData is one entry of the categories payload. ID is shared with the
// category heading so the two never depend on render order.
type CategoryData struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Animes []AnimeSummary `json:"animes"`
}

type AuthClaims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
