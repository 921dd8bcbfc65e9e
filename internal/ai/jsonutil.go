package ai

import (
	"regexp"
	"strings"
)

var (
	// fencePattern matches a markdown code fence around the payload:
	// ```json { ... } ``` or ``` [ ... ] ```
	fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")
	// trailingCommaPattern matches trailing commas before ] or }, which
	// generative models produce often enough to be worth cleaning.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSON pulls a JSON object out of a model response: fenced block
// first, then the outermost {...} span as a fallback. Returns "" when the
// response contains no object at all.
func extractJSON(content string) string {
	return extractSpan(content, '{', '}')
}

// extractJSONArray is extractJSON for top-level arrays.
func extractJSONArray(content string) string {
	return extractSpan(content, '[', ']')
}

func extractSpan(content string, open, close byte) string {
	if m := fencePattern.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}
	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, close)
	if start < 0 || end <= start {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(content[start:end+1], "$1")
}
