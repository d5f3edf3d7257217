package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contactKeywords mark a link as a likely contact/about style page when any
// of them appears in the href or the anchor text.
var contactKeywords = []string{"contact", "about", "team", "staff", "directory", "about-us"}

// ContactPages scans every anchor in doc and returns the absolute URLs of
// links that look like contact pages. Relative hrefs are resolved against
// baseURL; only http and https URLs survive. The result is deduplicated and
// carries no ordering guarantee.
func ContactPages(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		lowerHref := strings.ToLower(href)
		lowerText := strings.ToLower(a.Text())

		if !matchesKeyword(lowerHref) && !matchesKeyword(lowerText) {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}

func matchesKeyword(s string) bool {
	for _, kw := range contactKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
