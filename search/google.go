// Package search provides the paginated Google Custom Search client that
// seeds the crawler with result URLs.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	resultsPerPage  = 10
)

// ErrMissingCredentials is returned when the API key or engine ID is absent.
var ErrMissingCredentials = errors.New("search: missing API key or search engine ID")

// Client queries the Google Custom Search JSON API, one result page at a
// time. Successive page requests are paced by a rate limiter to respect the
// API's rate limits.
type Client struct {
	httpClient *http.Client
	apiKey     string
	engineID   string
	endpoint   string
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (used by tests).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageDelay sets the minimum interval between successive page requests.
// Zero disables pacing.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.limiter = newLimiter(d) }
}

// NewClient validates the credentials and returns a search client. Missing
// credentials are a configuration error; the process must not proceed to a
// crawl without them.
func NewClient(apiKey, engineID string, opts ...Option) (*Client, error) {
	if apiKey == "" || engineID == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		engineID:   engineID,
		endpoint:   defaultEndpoint,
		limiter:    newLimiter(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// Search fetches up to pages result pages for query and returns the result
// URLs in order. Page i uses the API's 1-indexed start offset i*10+1.
// pagesFetched counts every page attempted, including pages that returned no
// items and the page on which an error occurred.
func (c *Client) Search(ctx context.Context, query string, pages int) (urls []string, pagesFetched int, err error) {
	for page := 0; page < pages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, pagesFetched, err
		}

		pagesFetched++
		start := page*resultsPerPage + 1
		links, err := c.fetchPage(ctx, query, start)
		if err != nil {
			return nil, pagesFetched, fmt.Errorf("search page %d: %w", page+1, err)
		}
		urls = append(urls, links...)
	}
	return urls, pagesFetched, nil
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

func (c *Client) fetchPage(ctx context.Context, query string, start int) ([]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("start", strconv.Itoa(start))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	links := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		links = append(links, item.Link)
	}
	return links, nil
}
