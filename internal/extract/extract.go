// Package extract pulls JSON values out of free-form text such as chat
// answers that wrap a JSON document in prose or markdown code fences.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

const fence = "```"

var (
	fencedJSONRe = regexp.MustCompile(`(?s)` + fence + `json\s*\n?(.*?)\n?\s*` + fence)
	jsonFenceRe  = regexp.MustCompile(`(?s)` + fence + `json.*?` + fence)
	anyFenceRe   = regexp.MustCompile(`(?s)` + fence + `.*?` + fence)
)

// FencedJSON returns the trimmed body of the first code block labelled json.
func FencedJSON(text string) (string, bool) {
	m := fencedJSONRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// BraceSpan returns the text between the first '{' and the last '}'
// inclusive. The span is not guaranteed to be valid JSON.
func BraceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

// StripFences removes every fenced code block and trims what is left.
func StripFences(text string) string {
	text = jsonFenceRe.ReplaceAllString(text, "")
	text = anyFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// JSON returns text as a JSON value when it is one, or else the outermost
// brace span inside it when that span is valid JSON.
func JSON(text string) (json.RawMessage, bool) {
	if trimmed := strings.TrimSpace(text); trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), true
	}
	if span, ok := BraceSpan(text); ok && json.Valid([]byte(span)) {
		return json.RawMessage(span), true
	}
	return nil, false
}
