package crawler

import (
	"sort"
	"sync"
)

// Result pairs a crawled URL with the emails found on it.
type Result struct {
	URL    string
	Emails []string
}

// ResultStore is a thread-safe mapping from URL to the set of emails found
// there. Keys keep insertion order; a URL is only ever present with a
// non-empty email set.
type ResultStore struct {
	mu     sync.Mutex
	emails map[string]map[string]struct{}
	order  []string
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		emails: make(map[string]map[string]struct{}),
	}
}

// Add merges emails into the set for url. Adding an empty slice is a no-op,
// which keeps the no-empty-set invariant without burdening callers.
func (rs *ResultStore) Add(url string, emails []string) {
	if len(emails) == 0 {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	set, ok := rs.emails[url]
	if !ok {
		set = make(map[string]struct{}, len(emails))
		rs.emails[url] = set
		rs.order = append(rs.order, url)
	}
	for _, e := range emails {
		set[e] = struct{}{}
	}
}

// Has reports whether url already has recorded emails.
func (rs *ResultStore) Has(url string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	_, ok := rs.emails[url]
	return ok
}

func (rs *ResultStore) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.order)
}

// Results returns a snapshot in insertion order. Emails per URL are sorted
// so output is stable regardless of scheduling.
func (rs *ResultStore) Results() []Result {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	out := make([]Result, 0, len(rs.order))
	for _, url := range rs.order {
		set := rs.emails[url]
		emails := make([]string, 0, len(set))
		for e := range set {
			emails = append(emails, e)
		}
		sort.Strings(emails)
		out = append(out, Result{URL: url, Emails: emails})
	}
	return out
}

// UniqueEmails returns every distinct email across all URLs, sorted.
func (rs *ResultStore) UniqueEmails() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	seen := make(map[string]struct{})
	for _, set := range rs.emails {
		for e := range set {
			seen[e] = struct{}{}
		}
	}
	emails := make([]string, 0, len(seen))
	for e := range seen {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	return emails
}
