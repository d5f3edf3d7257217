// Package crawler implements the crawl orchestration engine: it turns a
// search query into seed URLs, crawls each seed and its contact pages under
// a fixed-width worker pool, and accumulates emails, statistics, and
// optional per-page diagnostics.
package crawler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"charm.land/log/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/shanto12/google-search/extract"
)

const defaultWorkers = 5

// Fetcher retrieves the raw content of a single page. ok is false on any
// transport failure, timeout, or non-success status; a failed fetch is
// never fatal to the crawl.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (content string, ok bool)
}

// SearchProvider returns seed URLs for a query across up to pages result
// pages. pagesFetched counts every page attempted, including the page on
// which an error occurred.
type SearchProvider interface {
	Search(ctx context.Context, query string, pages int) (urls []string, pagesFetched int, err error)
}

// Event is emitted during a crawl for progress tracking.
type Event struct {
	Type   string // "start", "fetching", "done", "error"
	URL    string
	Total  int // seed count, "start" events only
	Emails int // emails found on this branch, "done" events only
	Err    error
}

// Options configures the crawl engine.
type Options struct {
	Fetcher     Fetcher
	Search      SearchProvider
	Workers     int  // pool width, default 5
	Diagnostics bool // keep per-page trace records
	Logger      *log.Logger
	OnEvent     func(Event) // optional progress callback
}

func (o *Options) emit(e Event) {
	if o.OnEvent != nil {
		o.OnEvent(e)
	}
}

// Engine owns the shared result store, the counters, and the diagnostics
// recorder for one or more crawls.
type Engine struct {
	opts  Options
	store *ResultStore
	stats stats
	diag  *Recorder
}

// New builds an engine. Fetcher and Search are required.
func New(opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{
		opts:  opts,
		store: NewResultStore(),
		diag:  NewRecorder(opts.Diagnostics),
	}
}

// SetOnEvent installs the progress callback. Call before SearchAndCrawl.
func (e *Engine) SetOnEvent(fn func(Event)) {
	e.opts.OnEvent = fn
}

// SearchAndCrawl runs the search, crawls every result URL through the worker
// pool, and returns the accumulated results once all workers have joined.
// A failed or empty search yields an empty result with no crawl attempted.
func (e *Engine) SearchAndCrawl(ctx context.Context, query string, pages int) []Result {
	urls, pagesFetched, err := e.opts.Search.Search(ctx, query, pages)
	e.stats.searchPagesFetched.Add(int64(pagesFetched))
	if err != nil {
		e.opts.Logger.Warn("search failed", "query", query, "err", err)
		urls = nil
	}
	if len(urls) == 0 {
		e.opts.Logger.Info("no URLs found in search results", "query", query)
		return nil
	}

	e.opts.Logger.Info("crawling search results", "query", query, "urls", len(urls), "workers", e.opts.Workers)
	e.opts.emit(Event{Type: "start", Total: len(urls)})

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < e.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				e.crawlOne(ctx, u)
			}
		}()
	}

	for _, u := range urls {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	return e.store.Results()
}

// crawlOne processes a single seed URL: fetch, extract, discover contact
// pages, fetch each undiscovered contact page, extract again. Contact pages
// of contact pages are never followed.
func (e *Engine) crawlOne(ctx context.Context, seedURL string) {
	d := e.diag.Start(seedURL)
	e.opts.emit(Event{Type: "fetching", URL: seedURL})

	content, ok := e.opts.Fetcher.Fetch(ctx, seedURL)
	if !ok {
		d.RecordError("failed to fetch main page")
		e.opts.Logger.Warn("page unreachable", "url", seedURL)
		e.opts.emit(Event{Type: "error", URL: seedURL, Err: fmt.Errorf("failed to fetch %s", seedURL)})
		return
	}
	e.stats.sitesVisited.Add(1)
	d.MarkMainFetched()

	found := 0
	if emails := extract.Emails(content); len(emails) > 0 {
		e.store.Add(seedURL, emails)
		d.RecordEmails(emails)
		found += len(emails)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		d.RecordError("parse failed: " + err.Error())
		e.opts.Logger.Warn("cannot parse page", "url", seedURL, "err", err)
		e.opts.emit(Event{Type: "done", URL: seedURL, Emails: found})
		return
	}

	contacts := extract.ContactPages(doc, seedURL)
	d.RecordContactLinks(contacts)

	for _, contactURL := range contacts {
		// First-writer-wins: skip a contact URL only once some crawl has
		// already recorded emails for it. A contact page that yielded no
		// emails will be fetched again when rediscovered.
		if e.store.Has(contactURL) {
			continue
		}

		contactContent, ok := e.opts.Fetcher.Fetch(ctx, contactURL)
		d.RecordContactFetch(contactURL, ok)
		if !ok {
			d.RecordError("failed to fetch contact page " + contactURL)
			e.opts.Logger.Warn("contact page unreachable", "url", contactURL, "seed", seedURL)
			continue
		}
		e.stats.sitesVisited.Add(1)

		if emails := extract.Emails(contactContent); len(emails) > 0 {
			e.store.Add(contactURL, emails)
			d.RecordEmails(emails)
			found += len(emails)
		}
	}

	e.opts.emit(Event{Type: "done", URL: seedURL, Emails: found})
}

// Stats returns a snapshot of the engine counters. Only meaningful after
// SearchAndCrawl has returned.
func (e *Engine) Stats() CrawlStats {
	return e.stats.snapshot()
}

// Diagnostics returns the per-seed trace records, empty unless the engine
// was built with Diagnostics enabled.
func (e *Engine) Diagnostics() []*PageDiagnostics {
	return e.diag.Pages()
}

// Results returns the current result snapshot.
func (e *Engine) Results() []Result {
	return e.store.Results()
}
