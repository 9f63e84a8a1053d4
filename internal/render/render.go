// Package render turns raw note content into sanitized HTML.
//
// Whatever the input, the output never permits script execution: Markdown is
// converted with goldmark and then passed through a bluemonday allow-list
// policy, and every other format is HTML-escaped before any markup is added.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/Trailblaze-work/github-git-notes-viewer/internal/format"
)

// markdown is the shared GFM converter. Raw HTML in the source passes through
// here and is neutralized by the sanitizer afterwards.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// policy is the allow-list applied to converted Markdown. UGCPolicy permits
// the usual formatting tags and safe link schemes while stripping scripts,
// event handlers, and javascript: URLs.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("span", "pre", "code")
	return p
}()

// yamlKeyLine splits a "key:" prefix from the rest of a YAML line.
var yamlKeyLine = regexp.MustCompile(`^(\s*)([A-Za-z0-9_.-]+:)(\s.*|$)`)

// HTML renders text as sanitized HTML for the given format.
func HTML(f format.Format, text string) (string, error) {
	switch f {
	case format.Markdown:
		return renderMarkdown(text)
	case format.JSON:
		return renderJSON(text), nil
	case format.YAML:
		return renderYAML(text), nil
	default:
		return renderPlain(text), nil
	}
}

// Auto detects the format and renders in one step.
func Auto(text string) (format.Format, string, error) {
	f := format.Detect(text)
	out, err := HTML(f, text)
	return f, out, err
}

// renderMarkdown converts GFM to HTML and sanitizes the result.
func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// renderJSON pretty-prints valid JSON and escapes it inside a code block.
// Invalid JSON falls back to plain rendering rather than erroring; the
// detector should have prevented this, but renderers stay total.
func renderJSON(text string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(text)), "", "  "); err != nil {
		return renderPlain(text)
	}
	return `<pre class="note-json"><code>` + html.EscapeString(buf.String()) + "</code></pre>"
}

// renderYAML emits each line with the mapping key wrapped in a highlight span.
// Values are always escaped; only the span markup is introduced by us.
func renderYAML(text string) string {
	var b strings.Builder
	b.WriteString(`<pre class="note-yaml">`)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if m := yamlKeyLine.FindStringSubmatch(line); m != nil {
			b.WriteString(html.EscapeString(m[1]))
			b.WriteString(`<span class="note-yaml-key">` + html.EscapeString(m[2]) + `</span>`)
			b.WriteString(html.EscapeString(m[3]))
			continue
		}
		b.WriteString(html.EscapeString(line))
	}
	b.WriteString("</pre>")
	return b.String()
}

// renderPlain escapes text inside a preformatted block.
func renderPlain(text string) string {
	return `<pre class="note-plain">` + html.EscapeString(text) + "</pre>"
}
