// Package output renders crawl results: a glamour terminal report, a plain
// fallback, and an XLSX export.
package output

import (
	"fmt"
	"io"

	"charm.land/glamour/v2"
)

// RenderTerminal renders a markdown report to w using glamour. Falls back to
// the raw markdown if a renderer cannot be created.
func RenderTerminal(w io.Writer, markdown string, wordWrap int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		_, werr := fmt.Fprint(w, markdown)
		return werr
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		_, werr := fmt.Fprint(w, markdown)
		return werr
	}

	_, err = fmt.Fprint(w, rendered)
	return err
}
