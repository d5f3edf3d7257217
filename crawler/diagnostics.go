package crawler

import (
	"sync"
	"time"
)

// PageDiagnostics traces what happened while crawling one seed URL: whether
// the main page came back, which emails and contact links were found, how
// each contact fetch went, and any errors along the way.
//
// A record belongs to exactly one worker for the duration of the crawl, so
// its mutators need no locking. All methods are nil-safe; with diagnostics
// disabled the engine works against a nil record.
type PageDiagnostics struct {
	URL             string
	StartedAt       time.Time
	MainPageFetched bool
	Emails          []string
	ContactLinks    []string
	ContactFetches  map[string]bool
	Errors          []string

	emailSeen map[string]struct{}
}

func (d *PageDiagnostics) MarkMainFetched() {
	if d == nil {
		return
	}
	d.MainPageFetched = true
}

// RecordEmails adds emails to the record's aggregate set, keeping discovery
// order and dropping duplicates.
func (d *PageDiagnostics) RecordEmails(emails []string) {
	if d == nil {
		return
	}
	for _, e := range emails {
		if _, ok := d.emailSeen[e]; ok {
			continue
		}
		d.emailSeen[e] = struct{}{}
		d.Emails = append(d.Emails, e)
	}
}

func (d *PageDiagnostics) RecordContactLinks(links []string) {
	if d == nil {
		return
	}
	d.ContactLinks = append(d.ContactLinks, links...)
}

func (d *PageDiagnostics) RecordContactFetch(url string, ok bool) {
	if d == nil {
		return
	}
	d.ContactFetches[url] = ok
}

func (d *PageDiagnostics) RecordError(msg string) {
	if d == nil {
		return
	}
	d.Errors = append(d.Errors, msg)
}

// Recorder hands out one PageDiagnostics per seed URL. Creation is locked
// because workers start concurrently; mutation of individual records is not,
// since each seed is processed by a single worker.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	pages   map[string]*PageDiagnostics
	order   []string
}

func NewRecorder(enabled bool) *Recorder {
	return &Recorder{
		enabled: enabled,
		pages:   make(map[string]*PageDiagnostics),
	}
}

func (r *Recorder) Enabled() bool { return r.enabled }

// Start creates (or returns) the record for url. Returns nil when
// diagnostics are disabled.
func (r *Recorder) Start(url string) *PageDiagnostics {
	if !r.enabled {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.pages[url]; ok {
		return d
	}
	d := &PageDiagnostics{
		URL:            url,
		StartedAt:      time.Now(),
		ContactFetches: make(map[string]bool),
		emailSeen:      make(map[string]struct{}),
	}
	r.pages[url] = d
	r.order = append(r.order, url)
	return d
}

// Pages returns all records in the order crawling began.
func (r *Recorder) Pages() []*PageDiagnostics {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*PageDiagnostics, 0, len(r.order))
	for _, url := range r.order {
		out = append(out, r.pages[url])
	}
	return out
}
