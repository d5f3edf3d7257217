package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shanto12/google-search/crawler"
)

// ReportMarkdown builds the results list plus the aggregate summary as a
// markdown document. Pure; rendering happens elsewhere.
func ReportMarkdown(query string, results []crawler.Result, stats crawler.CrawlStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Results for %q\n\n", query)

	if len(results) == 0 {
		b.WriteString("No email addresses found.\n\n")
	} else {
		for _, r := range results {
			fmt.Fprintf(&b, "## %s\n\n", r.URL)
			for _, e := range r.Emails {
				fmt.Fprintf(&b, "- %s\n", e)
			}
			b.WriteString("\n")
		}
	}

	unique := uniqueEmails(results)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Search pages fetched: %d\n", stats.SearchPagesFetched)
	fmt.Fprintf(&b, "- Sites visited: %d\n", stats.SitesVisited)
	fmt.Fprintf(&b, "- Sites with emails: %d\n", len(results))
	fmt.Fprintf(&b, "- Unique emails: %d\n", len(unique))

	if len(unique) > 0 {
		b.WriteString("\n### All unique emails\n\n")
		for _, e := range unique {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

// DiagnosticsMarkdown builds the per-page trace report.
func DiagnosticsMarkdown(pages []*crawler.PageDiagnostics) string {
	var b strings.Builder

	b.WriteString("# Crawl diagnostics\n\n")
	if len(pages) == 0 {
		b.WriteString("No pages were crawled.\n")
		return b.String()
	}

	for _, d := range pages {
		fmt.Fprintf(&b, "## %s\n\n", d.URL)
		fmt.Fprintf(&b, "- Started: %s\n", d.StartedAt.Format("15:04:05.000"))
		fmt.Fprintf(&b, "- Main page fetched: %v\n", d.MainPageFetched)
		fmt.Fprintf(&b, "- Emails found: %d\n", len(d.Emails))
		fmt.Fprintf(&b, "- Contact links discovered: %d\n", len(d.ContactLinks))

		if len(d.ContactFetches) > 0 {
			b.WriteString("\n### Contact fetches\n\n")
			urls := make([]string, 0, len(d.ContactFetches))
			for u := range d.ContactFetches {
				urls = append(urls, u)
			}
			sort.Strings(urls)
			for _, u := range urls {
				status := "ok"
				if !d.ContactFetches[u] {
					status = "failed"
				}
				fmt.Fprintf(&b, "- %s — %s\n", u, status)
			}
		}

		if len(d.Errors) > 0 {
			b.WriteString("\n### Errors\n\n")
			for _, e := range d.Errors {
				fmt.Fprintf(&b, "- %s\n", e)
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

// ResultMarkdown builds the detail view for a single crawled URL, folding in
// its diagnostics record when one exists.
func ResultMarkdown(r crawler.Result, d *crawler.PageDiagnostics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.URL)

	b.WriteString("## Emails\n\n")
	for _, e := range r.Emails {
		fmt.Fprintf(&b, "- %s\n", e)
	}

	if d != nil {
		fmt.Fprintf(&b, "\n## Crawl trace\n\n")
		fmt.Fprintf(&b, "- Started: %s\n", d.StartedAt.Format("15:04:05.000"))
		fmt.Fprintf(&b, "- Main page fetched: %v\n", d.MainPageFetched)
		fmt.Fprintf(&b, "- Contact links discovered: %d\n", len(d.ContactLinks))
		for _, link := range d.ContactLinks {
			status := ""
			if ok, fetched := d.ContactFetches[link]; fetched {
				status = " — fetched"
				if !ok {
					status = " — fetch failed"
				}
			}
			fmt.Fprintf(&b, "  - %s%s\n", link, status)
		}
		if len(d.Errors) > 0 {
			b.WriteString("\n### Errors\n\n")
			for _, e := range d.Errors {
				fmt.Fprintf(&b, "- %s\n", e)
			}
		}
	}

	return b.String()
}

// uniqueEmails flattens results into a sorted, deduplicated email list.
func uniqueEmails(results []crawler.Result) []string {
	seen := make(map[string]struct{})
	for _, r := range results {
		for _, e := range r.Emails {
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
