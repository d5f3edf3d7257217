package output_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanto12/google-search/crawler"
	"github.com/shanto12/google-search/output"
)

func sampleResults() []crawler.Result {
	return []crawler.Result{
		{URL: "https://a.example/", Emails: []string{"info@a.example", "shared@x.example"}},
		{URL: "https://b.example/about", Emails: []string{"shared@x.example"}},
	}
}

func TestReportMarkdown(t *testing.T) {
	stats := crawler.CrawlStats{SearchPagesFetched: 2, SitesVisited: 5}
	md := output.ReportMarkdown("plumbers", sampleResults(), stats)

	assert.Contains(t, md, `# Results for "plumbers"`)
	assert.Contains(t, md, "## https://a.example/")
	assert.Contains(t, md, "- info@a.example")
	assert.Contains(t, md, "## https://b.example/about")

	assert.Contains(t, md, "- Search pages fetched: 2")
	assert.Contains(t, md, "- Sites visited: 5")
	assert.Contains(t, md, "- Sites with emails: 2")
	assert.Contains(t, md, "- Unique emails: 3")

	// The shared email shows up once per URL section and once, deduplicated,
	// in the summary list.
	assert.Equal(t, 3, strings.Count(md, "- shared@x.example"))
	assert.Contains(t, md, "### All unique emails")
}

func TestReportMarkdown_NoResults(t *testing.T) {
	md := output.ReportMarkdown("nothing", nil, crawler.CrawlStats{SearchPagesFetched: 2})

	assert.Contains(t, md, "No email addresses found.")
	assert.Contains(t, md, "- Unique emails: 0")
	assert.NotContains(t, md, "### All unique emails")
}

func TestDiagnosticsMarkdown(t *testing.T) {
	rec := crawler.NewRecorder(true)
	d := rec.Start("https://a.example/")
	require.NotNil(t, d)
	d.MarkMainFetched()
	d.RecordEmails([]string{"info@a.example"})
	d.RecordContactLinks([]string{"https://a.example/contact"})
	d.RecordContactFetch("https://a.example/contact", false)
	d.RecordError("failed to fetch contact page https://a.example/contact")

	md := output.DiagnosticsMarkdown(rec.Pages())

	assert.Contains(t, md, "## https://a.example/")
	assert.Contains(t, md, "- Main page fetched: true")
	assert.Contains(t, md, "- Emails found: 1")
	assert.Contains(t, md, "- https://a.example/contact — failed")
	assert.Contains(t, md, "### Errors")
}

func TestDiagnosticsMarkdown_Empty(t *testing.T) {
	md := output.DiagnosticsMarkdown(nil)
	assert.Contains(t, md, "No pages were crawled.")
}

func TestResultMarkdown(t *testing.T) {
	r := crawler.Result{URL: "https://a.example/", Emails: []string{"info@a.example"}}

	t.Run("without diagnostics", func(t *testing.T) {
		md := output.ResultMarkdown(r, nil)
		assert.Contains(t, md, "# https://a.example/")
		assert.Contains(t, md, "- info@a.example")
		assert.NotContains(t, md, "## Crawl trace")
	})

	t.Run("with diagnostics", func(t *testing.T) {
		d := &crawler.PageDiagnostics{
			URL:             "https://a.example/",
			StartedAt:       time.Now(),
			MainPageFetched: true,
			ContactLinks:    []string{"https://a.example/contact"},
			ContactFetches:  map[string]bool{"https://a.example/contact": true},
		}
		md := output.ResultMarkdown(r, d)
		assert.Contains(t, md, "## Crawl trace")
		assert.Contains(t, md, "https://a.example/contact — fetched")
	})
}
