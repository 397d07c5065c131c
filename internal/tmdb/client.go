package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

var (
	// ErrNotFound is returned when a movie doesn't exist in TMDB.
	ErrNotFound = errors.New("movie not found")

	// ErrAPIKeyMissing is returned when no API key was configured.
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
)

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	movies     *cache[int64, *Movie]
	searches   *cache[string, []SearchResult]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.movies = newCache[int64, *Movie](ttl)
		c.searches = newCache[string, []SearchResult](ttl)
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
		c.log = log.With("component", "tmdb")
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		movies:   newCache[int64, *Movie](defaultCacheTTL),
		searches: newCache[string, []SearchResult](defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	if movie, ok := c.movies.get(tmdbID); ok {
		return movie, nil
	}

	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), nil, &movie); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("fetched movie", "tmdb_id", tmdbID, "title", movie.Title, "release_date", movie.ReleaseDate)
	}
	c.movies.set(tmdbID, &movie)
	return &movie, nil
}

// SearchMovies searches movies by title, in TMDB's relevance order.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]SearchResult, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if results, ok := c.searches.get(key); ok {
		return results, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var resp searchResponse
	if err := c.get(ctx, "/3/search/movie", params, &resp); err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("search completed", "query", query, "results", len(resp.Results))
	}
	c.searches.set(key, resp.Results)
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
