// Package sanitize is the single boundary between user-supplied text and
// storage or HTML output. Stored text carries no markup at all; post bodies
// are rendered from markdown through a small element allow-list.
package sanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	render = renderPolicy()
)

func renderPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "li", "ol",
		"strong", "b", "i", "em",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	return p
}

// PlainText trims the input and strips every tag and attribute. This is what
// gets persisted; an input that is empty after stripping stays empty.
func PlainText(input string) string {
	cleaned := strict.Sanitize(strings.TrimSpace(input))
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// UserHTML renders stored plain text as markdown and sanitizes the result
// down to the display allow-list. Exposed to templates as a func.
func UserHTML(content string) template.HTML {
	rendered := markdown.ToHTML([]byte(content), nil, nil)
	return template.HTML(render.SanitizeBytes(rendered))
}
