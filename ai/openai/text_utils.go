package openai

import "strings"

// stripCodeFences removes a wrapping markdown code fence from model output.
// Some models fence free-text answers despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	body, ok := strings.CutPrefix(s, "```")
	if !ok {
		return s
	}
	// Drop an optional language tag on the opening fence line
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
