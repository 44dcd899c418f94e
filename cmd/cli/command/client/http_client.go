package client

// http_client.go = talks to the takosu API on behalf of the CLI widgets.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"takosu/cmd/cli/dto"
	"takosu/internal/shared"
	"takosu/internal/widget/carousel"
	"takosu/internal/widget/feed"
)

// HTTPClient is the API client shared by every command.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// DefaultTimeout must stay above the server's LONG_POLL_TIMEOUT (25s by
// default), or every idle poll ends as a client error.
const DefaultTimeout = 40 * time.Second

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// redirects are answered by the page itself, never followed
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// SetTimeout bounds every request, long polls included. Non-positive values
// keep the current timeout.
func (c *HTTPClient) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// newRequest builds a programmatic request, authenticated when a token is set.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(shared.XHRHeader, shared.XHRValue)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// getJSON decodes a 200 response into out.
func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON sends in as JSON and decodes the response into out when it has the wanted status.
func (c *HTTPClient) postJSON(ctx context.Context, path string, in any, want int, out any) error {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.post(ctx, path, "application/json", bytes.NewBuffer(jsonData), want, out)
}

// post sends body with the given content type; out may be nil when the answer has no body.
func (c *HTTPClient) post(ctx context.Context, path, contentType string, body io.Reader, want int, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("request failed with status: %s%s", resp.Status, errorDetail(resp.Body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError maps a feed-closing status to feed.ErrDenied and any other non-200 to an error.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusForbidden, http.StatusNotFound:
		return fmt.Errorf("%w: %s", feed.ErrDenied, resp.Status)
	default:
		return fmt.Errorf("request failed with status: %s%s", resp.Status, errorDetail(resp.Body))
	}
}

func errorDetail(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil || body.Error == "" {
		return ""
	}
	return " (" + body.Error + ")"
}

// login method for HTTP client
func (c *HTTPClient) Login(ctx context.Context, request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.postJSON(ctx, "/login/", request, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// register method for HTTP client
func (c *HTTPClient) Register(ctx context.Context, request *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var result dto.RegisterResponse
	if err := c.postJSON(ctx, "/signup/", request, http.StatusCreated, &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &result, nil
}

// refresh token method for HTTP client
func (c *HTTPClient) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.RefreshResponse, error) {
	var result dto.RefreshResponse
	if err := c.postJSON(ctx, "/token/refresh/", request, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return &result, nil
}

// revoke token method for HTTP client
func (c *HTTPClient) RevokeToken(ctx context.Context, request *dto.RevokeTokenRequest) (*dto.RevokeTokenResponse, error) {
	var result dto.RevokeTokenResponse
	if err := c.postJSON(ctx, "/token/revoke/", request, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("revoke: %w", err)
	}
	return &result, nil
}

// Search implements search.Searcher against GET /search/.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]shared.AnimeSummary, error) {
	var result []shared.AnimeSummary
	if err := c.getJSON(ctx, "/search/?search="+url.QueryEscape(query), &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return result, nil
}

// Categories loads the home page carousels.
func (c *HTTPClient) Categories(ctx context.Context) (*carousel.Catalog, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/", &raw); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return carousel.ParseCategoriesData(raw)
}

// RedirectPath asks where the viewer's help chat lives.
func (c *HTTPClient) RedirectPath(ctx context.Context) (string, error) {
	var result dto.RedirectResponse
	if err := c.getJSON(ctx, "/conversations/redirect/", &result); err != nil {
		return "", fmt.Errorf("conversation redirect: %w", err)
	}
	return result.URL, nil
}

func (c *HTTPClient) Conversations(ctx context.Context) ([]dto.ConversationResponse, error) {
	var result []dto.ConversationResponse
	if err := c.getJSON(ctx, "/conversations/", &result); err != nil {
		return nil, fmt.Errorf("conversations: %w", err)
	}
	return result, nil
}

// EpisodePage loads the comment history and the initial cursor of an episode.
func (c *HTTPClient) EpisodePage(ctx context.Context, anime string, number int) (*dto.EpisodePage, error) {
	var page dto.EpisodePage
	if err := c.getJSON(ctx, EpisodePath(anime, number), &page); err != nil {
		return nil, fmt.Errorf("episode page: %w", err)
	}
	return &page, nil
}

// ConversationPath is the page of a help chat.
// SubmitSuggestion drops a suggestion in the suggestion box.
func (c *HTTPClient) SubmitSuggestion(ctx context.Context, subject, message string) error {
	form := url.Values{"subject": {subject}, "message": {message}}
	return c.post(ctx, "/suggestion/", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), http.StatusNoContent, nil)
}

// Suggestions returns the suggestion box page; only admins get the suggestions.
func (c *HTTPClient) Suggestions(ctx context.Context) (*dto.SuggestionPage, error) {
	var page dto.SuggestionPage
	if err := c.getJSON(ctx, "/suggestion/", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	var profile dto.ProfileResponse
	if err := c.getJSON(ctx, "/profile/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UploadIcon replaces the profile icon with the contents of r and returns its URL.
func (c *HTTPClient) UploadIcon(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("icon", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read icon: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var result dto.IconResponse
	if err := c.post(ctx, "/profile/", mw.FormDataContentType(), &body, http.StatusOK, &result); err != nil {
		return "", err
	}
	return result.Icon, nil
}

// ToggleFavorite adds anime to the favorites or removes it.
func (c *HTTPClient) ToggleFavorite(ctx context.Context, anime string) (*dto.FavoriteResponse, error) {
	var result dto.FavoriteResponse
	if err := c.post(ctx, FavoritePath(anime), "", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func FavoritePath(anime string) string {
	return "/anime/" + url.PathEscape(anime) + "/favorite/"
}

func ConversationPath(id int64) string {
	return "/help-chat/" + strconv.FormatInt(id, 10) + "/"
}

// EpisodePath is the page of an episode.
func EpisodePath(anime string, number int) string {
	return "/watch/" + url.PathEscape(anime) + "/episode/" + strconv.Itoa(number) + "/"
}

// ParseConversationPath extracts the id from a /help-chat/<id>/ path.
func ParseConversationPath(path string) (int64, bool) {
	rest, ok := strings.CutPrefix(path, "/help-chat/")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(rest, "/"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Feed is one page's poll endpoint and form target. It implements
// feed.Fetcher and feed.Submitter.
type Feed[T feed.Record] struct {
	client *HTTPClient
	path   string
	marker string
}

// ChatFeed polls GET /help-chat/<id>/?message=1.
func (c *HTTPClient) ChatFeed(id int64) *Feed[shared.MessageRecord] {
	return &Feed[shared.MessageRecord]{client: c, path: ConversationPath(id), marker: "message"}
}

// CommentFeed polls GET /watch/<anime>/episode/<n>/?comment=1.
func (c *HTTPClient) CommentFeed(anime string, number int) *Feed[shared.CommentRecord] {
	return &Feed[shared.CommentRecord]{client: c, path: EpisodePath(anime, number), marker: "comment"}
}

func (f *Feed[T]) Fetch(ctx context.Context, after int64) ([]T, error) {
	q := url.Values{}
	q.Set(f.marker, "1")
	q.Set("after", strconv.FormatInt(after, 10))

	var records []T
	if err := f.client.getJSON(ctx, f.path+"?"+q.Encode(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Submit posts the form fields. Any response counts as delivered.
func (f *Feed[T]) Submit(ctx context.Context, fields url.Values) error {
	req, err := f.client.newRequest(ctx, http.MethodPost, f.path, strings.NewReader(fields.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
