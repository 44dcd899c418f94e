package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL = "https://graphql.anilist.co"

	// Rate limiting: AniList allows ~90 requests per minute
	rateLimit = 1 // 1 requests per second = 60/min
	rateBurst = 5

	// Retry configuration
	maxRetries   = 5
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second

	// AniList max per page
	MaxPerPage = 50
)

// Client handles GraphQL API requests with rate limiting
type Client struct {
	apiURL      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	retryDelay  time.Duration
}

// NewClient creates a new AniList API client
func NewClient(apiURL string, logger *slog.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiURL:      apiURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		logger:      logger,
		retryDelay:  initialDelay,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// GraphQLRequest represents a GraphQL query request
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

const animePageQuery = `
query ($page: Int, $perPage: Int) {
    Page(page: $page, perPage: $perPage) {
        pageInfo {
            total
            currentPage
            lastPage
            hasNextPage
            perPage
        }
        media(type: ANIME, sort: POPULARITY_DESC, isAdult: false) {
            id
            title {
                english
                romaji
                native
            }
            description(asHtml: false)
            episodes
            coverImage {
                extraLarge
                large
            }
            bannerImage
            genres
            favourites
            startDate {
                year
                month
                day
            }
        }
    }
}
`

// GetAnime fetches one page of the most popular anime
func (c *Client) GetAnime(ctx context.Context, page, perPage int) (*PageResponse, error) {
	variables := map[string]any{
		"page":    page,
		"perPage": perPage,
	}

	var result PageResponse
	if err := c.doRequest(ctx, animePageQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch anime page %d: %w", page, err)
	}
	return &result, nil
}

// doRequest performs a GraphQL request with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, query string, variables map[string]any, result any) error {
	bodyJSON, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("anilist request failed, retrying", "attempt", attempt, "max", maxRetries, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, maxDelay)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retry, err := c.do(ctx, bodyJSON, result, &delay)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

// do sends one attempt and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, body []byte, result any, delay *time.Duration) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if d, err := time.ParseDuration(retryAfter + "s"); err == nil {
				*delay = d
			}
		}
		return shouldRetry(resp.StatusCode), fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var gqlResp GraphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return false, fmt.Errorf("failed to parse GraphQL response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		errMsgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			errMsgs[i] = e.Message
		}
		return false, fmt.Errorf("GraphQL errors: %v", errMsgs)
	}

	if err := json.Unmarshal(gqlResp.Data, result); err != nil {
		return false, fmt.Errorf("failed to parse data: %w", err)
	}
	return false, nil
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || // 429
		statusCode >= 500 // 500-504
}
