// Package extract holds the pure text/HTML extraction primitives: email
// pattern matching and contact-page link discovery.
package extract

import "regexp"

// emailPattern matches a local part, an @, a domain, and a TLD of at least
// two letters. Matching is purely syntactic; deliverability is out of scope.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Emails returns the distinct email addresses found in text, in first-seen
// order. Case is preserved as found. Empty input yields nil.
func Emails(text string) []string {
	matches := emailPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	emails := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		emails = append(emails, m)
	}
	return emails
}
