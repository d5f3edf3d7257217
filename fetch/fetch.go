// Package fetch provides the raw page transport used by the crawl engine.
package fetch

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/shanto12/google-search/config"
)

// Client fetches single pages through a colly collector. Any transport
// error, timeout, or non-2xx status is reported as ok=false; a failed page
// is never fatal to the caller.
type Client struct {
	collector *colly.Collector
}

// NewClient builds a fetcher with the given per-request timeout and
// User-Agent. An empty userAgent falls back to the browser-like default.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(timeout)
	// The engine decides what gets fetched; the transport must not keep its
	// own visited set or consult robots.txt.
	c.AllowURLRevisit = true
	c.IgnoreRobotsTxt = true

	// Per-request state travels through the colly context so concurrent
	// Fetch calls never observe each other's responses.
	c.OnResponse(func(r *colly.Response) {
		r.Ctx.Put("body", string(r.Body))
		r.Ctx.Put("ok", "1")
	})
	c.OnError(func(r *colly.Response, err error) {
		r.Ctx.Put("err", err.Error())
	})

	return &Client{collector: c}
}

// Fetch retrieves rawURL and returns its body. ok is false on any transport
// failure or non-success status.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	reqCtx := colly.NewContext()
	if err := c.collector.Request("GET", rawURL, nil, reqCtx, nil); err != nil {
		return "", false
	}
	if reqCtx.Get("ok") != "1" {
		return "", false
	}
	return reqCtx.Get("body"), true
}
