package generation

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ziljnk/content-generation/internal/model"
)

// NormalizeDocument cleans up raw model output before injection. The model is
// told not to wrap output in markdown code blocks and to return a full HTML
// document, but it does not always comply: fences are stripped, and for the
// HTML content types a Markdown answer is rendered into a minimal document.
func NormalizeDocument(raw, contentType string) string {
	text := stripFences(strings.TrimSpace(raw))
	if contentType == model.TypeSocial {
		return text
	}
	if looksLikeHTML(text) {
		return text
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return text
	}
	return "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n" +
		buf.String() + "</body>\n</html>"
}

// stripFences removes a wrapping markdown code fence (``` or ```html).
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return ""
	}
	s = strings.TrimSpace(s[i+1:])
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype") ||
		strings.HasPrefix(lower, "<html") ||
		strings.HasPrefix(lower, "<!--") ||
		strings.Contains(lower, "<body")
}
