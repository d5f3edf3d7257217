package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shanto12/google-search/extract"
)

func TestEmails(t *testing.T) {
	t.Run("deduplicates repeated addresses", func(t *testing.T) {
		got := extract.Emails("Contact Jane at jane.doe@example.com or jane.doe@example.com!")
		assert.Equal(t, []string{"jane.doe@example.com"}, got)
	})

	t.Run("finds multiple distinct addresses", func(t *testing.T) {
		text := `<p>Sales: sales@shop.io</p><p>Support: help+tickets@shop.io</p>`
		got := extract.Emails(text)
		assert.ElementsMatch(t, []string{"sales@shop.io", "help+tickets@shop.io"}, got)
	})

	t.Run("preserves case as found", func(t *testing.T) {
		got := extract.Emails("Mail John.Doe@Example.COM today")
		assert.Equal(t, []string{"John.Doe@Example.COM"}, got)
	})

	t.Run("requires a TLD of at least two letters", func(t *testing.T) {
		assert.Empty(t, extract.Emails("broken@host.x and no-at-sign.example.com"))
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, extract.Emails(""))
	})
}
