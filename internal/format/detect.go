// Package format classifies raw note content so the renderer can pick the
// right treatment. Detection is heuristic but total: every input string maps
// to exactly one Format.
package format

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Format identifies the detected content format of a note.
type Format string

// Detected formats, in detection priority order.
const (
	JSON     Format = "json"
	Markdown Format = "markdown"
	YAML     Format = "yaml"
	Plain    Format = "plain"
)

// Markdown signals: ATX heading, bold, list item, table row, fenced code
// block, or HTML comment. Any single match classifies the text as Markdown.
var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^#{1,6}\s`),           // # Heading
	regexp.MustCompile(`\*\*[^*\n]+\*\*`),         // **bold**
	regexp.MustCompile(`(?m)^\s*[-*+]\s+\S`),      // - list item
	regexp.MustCompile(`(?m)^\s*\d+\.\s+\S`),      // 1. ordered item
	regexp.MustCompile(`(?m)^\|.+\|\s*$`),         // | table | row |
	regexp.MustCompile("(?m)^```"),                // fenced code block
	regexp.MustCompile(`<!--`),                    // HTML comment
	regexp.MustCompile(`\[[^\]\n]+\]\([^)\n]+\)`), // [link](url)
}

// yamlKeyValue matches a simple "key: value" mapping line.
var yamlKeyValue = regexp.MustCompile(`^[A-Za-z0-9_.-]+:\s+\S`)

// Detect classifies trimmed text as JSON, Markdown, YAML, or Plain.
//
// Order matters: JSON is checked first because a JSON document full of colons
// would otherwise look like YAML, and YAML last because almost anything with
// colons parses as YAML.
func Detect(text string) Format {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Plain
	}

	if isJSON(trimmed) {
		return JSON
	}
	if isMarkdown(trimmed) {
		return Markdown
	}
	if isYAML(trimmed) {
		return YAML
	}
	return Plain
}

// isJSON reports whether text is a JSON object or array.
// Bare scalars ("42", "true") are valid JSON but render better as plain text,
// so only {...} and [...] count.
func isJSON(trimmed string) bool {
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// isMarkdown reports whether any Markdown structural pattern is present.
func isMarkdown(trimmed string) bool {
	for _, p := range markdownPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// isYAML reports whether at least two lines look like "key: value" mappings.
// A single colon line is too weak a signal; prose like "Note: see below"
// would misclassify.
func isYAML(trimmed string) bool {
	count := 0
	for _, line := range strings.Split(trimmed, "\n") {
		if yamlKeyValue.MatchString(strings.TrimSpace(line)) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}
