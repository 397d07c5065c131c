package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.tvmaze.com"

// Sentinel errors for TVMaze API responses.
var (
	ErrNotFound    = errors.New("show not found")
	ErrRateLimited = errors.New("rate limited: too many requests")
)

// Client is a TVMaze API client. The API needs no key.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tvmaze")
	}
}

// New creates a new TVMaze client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SingleSearch returns the single best show match for name.
func (c *Client) SingleSearch(ctx context.Context, name string) (*Show, error) {
	start := time.Now()

	var show Show
	endpoint := "/singlesearch/shows?q=" + url.QueryEscape(name)
	if err := c.get(ctx, endpoint, &show); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("search completed", "query", name, "id", show.ID, "name", show.Name, "duration_ms", time.Since(start).Milliseconds())
	}
	return &show, nil
}

// Episodes returns every episode of a show in airing order.
func (c *Client) Episodes(ctx context.Context, showID int) ([]Episode, error) {
	start := time.Now()

	var episodes []Episode
	if err := c.get(ctx, fmt.Sprintf("/shows/%d/episodes", showID), &episodes); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched episodes", "show_id", showID, "count", len(episodes), "duration_ms", time.Since(start).Milliseconds())
	}
	return episodes, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkResponse maps HTTP status codes to sentinel errors.
func checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TVMaze API error: %s", resp.Status)
	}
}
