// Package htmlsanitize cleans user-generated HTML before it is stored
// or returned. Faction descriptions, article bodies, and feedback all
// pass through here.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows the usual UGC set (formatting, links, lists, tables,
// images) plus class attributes on table elements so authored content
// keeps its styling hooks. Scripts, event handlers, iframes, and
// non-http(s) URLs are stripped.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	return p
}()

// Sanitize returns s with disallowed HTML removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes s and marks the result safe for template
// interpolation.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags. A lone < or >
// (e.g. "5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	lt := strings.IndexByte(s, '<')
	if lt < 0 {
		return true
	}
	return strings.IndexByte(s[lt:], '>') < 0
}

// PlainTextToHTML escapes s and wraps it in a paragraph, converting
// newlines to <br>. Used for plain-text submissions displayed alongside
// HTML-authored content.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay converts s to safe display HTML: plain text is
// escaped and paragraph-wrapped, HTML is sanitized as-is.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
