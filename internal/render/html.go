package render

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// htmlDocument wraps content in a minimal HTML page. Plain content is escaped
// into a single paragraph; markdown content is converted by goldmark, which
// escapes raw HTML.
func htmlDocument(content string, asMarkdown bool) (string, error) {
	if !asMarkdown {
		return "<html><body><p>" + html.EscapeString(content) + "</p></body></html>", nil
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(content), &body); err != nil {
		return "", err
	}
	return `<html><head><meta charset="utf-8"></head><body>` + body.String() + "</body></html>", nil
}
