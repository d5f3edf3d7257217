package crawler

import "sync/atomic"

// stats holds the engine's monotonically increasing counters. Workers bump
// them concurrently, so both are atomics.
type stats struct {
	sitesVisited       atomic.Int64
	searchPagesFetched atomic.Int64
}

// CrawlStats is a point-in-time copy of the engine counters.
type CrawlStats struct {
	// SearchPagesFetched counts every search result page the provider
	// attempted, whether or not it returned results.
	SearchPagesFetched int
	// SitesVisited counts every successful page fetch, main and contact
	// pages alike.
	SitesVisited int
}

func (s *stats) snapshot() CrawlStats {
	return CrawlStats{
		SearchPagesFetched: int(s.searchPagesFetched.Load()),
		SitesVisited:       int(s.sitesVisited.Load()),
	}
}
