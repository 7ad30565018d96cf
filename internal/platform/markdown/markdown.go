package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in the source is dropped (goldmark's default), so the output is
// safe to embed in pages and feeds.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts a poll description to HTML.
func Render(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
