package llm

import (
	"regexp"
	"strings"
)

var (
	trailingObjComma = regexp.MustCompile(`,\s*}`)
	trailingArrComma = regexp.MustCompile(`,\s*]`)
)

// extractJSON pulls a JSON object out of a model response that may wrap it in
// code fences or surrounding prose. Local models also emit trailing commas;
// those are stripped so the result has a chance of unmarshaling.
func extractJSON(s string) string {
	s = stripCodeFence(s)

	// First '{' to last '}': models tend to narrate around the payload.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		s = s[start : end+1]
	}

	s = trailingObjComma.ReplaceAllString(s, "}")
	s = trailingArrComma.ReplaceAllString(s, "]")
	return strings.TrimSpace(s)
}

// stripCodeFence removes a ```json or ``` fence if the payload sits inside one.
func stripCodeFence(s string) string {
	idx := strings.Index(s, "```")
	if idx == -1 {
		return s
	}
	rest := s[idx+3:]
	rest = strings.TrimPrefix(rest, "json")
	if end := strings.Index(rest, "```"); end != -1 {
		return rest[:end]
	}
	return rest
}
