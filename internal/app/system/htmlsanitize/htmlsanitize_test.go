package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/novariagames/novaria/internal/app/system/htmlsanitize"
)

func TestSanitize_PreservesSafeHTML(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<u>underline</u> <s>strikethrough</s> <sub>sub</sub> <sup>sup</sup> <mark>mark</mark>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<blockquote>A quote</blockquote>",
		"<h1>Heading 1</h1><h2>Heading 2</h2><h3>Heading 3</h3>",
		"<pre><code>function test() {}</code></pre>",
		"<table><thead><tr><th>Header</th></tr></thead><tbody><tr><td>Cell</td></tr></tbody></table>",
	}
	for _, in := range inputs {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_RemovesDangerousContent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		badPart string
	}{
		{"script tag", "<p>Hello</p><script>alert('xss')</script>", "script"},
		{"onclick attr", `<button onclick="alert('xss')">Click</button>`, "onclick"},
		{"javascript href", `<a href="javascript:alert('xss')">Click</a>`, "javascript:"},
		{"iframe", `<p>Content</p><iframe src="https://evil.com"></iframe>`, "iframe"},
		{"style tag", `<style>body { color: red; }</style><p>Text</p>`, "<style>"},
		{"onerror attr", `<img src="x" onerror="alert('xss')">`, "onerror"},
		{"data url image", `<img src="data:text/html,<script>alert('xss')</script>">`, "data:text/html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tt.input); strings.Contains(got, tt.badPart) {
				t.Errorf("Sanitize(%q) = %q, still contains %q", tt.input, got, tt.badPart)
			}
		})
	}
}

func TestSanitize_KeepsSafeLinksAndImages(t *testing.T) {
	link := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(link, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", link)
	}

	img := htmlsanitize.Sanitize(`<img src="https://example.com/image.png" alt="Image">`)
	if !strings.Contains(img, "src=") || !strings.Contains(img, "alt=") {
		t.Errorf("expected image preserved, got %q", img)
	}
}

func TestSanitize_KeepsTableAttributes(t *testing.T) {
	got := htmlsanitize.Sanitize(`<table class="roster"><tr><td colspan="2" rowspan="2">Cell</td></tr></table>`)
	for _, want := range []string{`class="roster"`, `colspan="2"`, `rowspan="2"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s preserved, got %q", want, got)
		}
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.input); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	if got := htmlsanitize.PlainTextToHTML(""); got != "" {
		t.Errorf("empty: got %q", got)
	}
	if got := htmlsanitize.PlainTextToHTML("Hello, World!"); got != "<p>Hello, World!</p>" {
		t.Errorf("simple: got %q", got)
	}
	if got := htmlsanitize.PlainTextToHTML("Line 1\nLine 2\nLine 3"); got != "<p>Line 1<br>Line 2<br>Line 3</p>" {
		t.Errorf("newlines: got %q", got)
	}
	if got := htmlsanitize.PlainTextToHTML("<script>alert('xss')</script>"); strings.Contains(got, "<script>") {
		t.Errorf("expected markup escaped, got %q", got)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  template.HTML
	}{
		{"empty", "", ""},
		{"plain text", "Hello, World!", "<p>Hello, World!</p>"},
		{"html", "<p>Hello</p>", "<p>Hello</p>"},
		{"html with script", "<p>Hello</p><script>alert('xss')</script>", "<p>Hello</p>"},
		{"plain text with newlines", "Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PrepareForDisplay(tt.input); got != tt.want {
				t.Errorf("PrepareForDisplay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
