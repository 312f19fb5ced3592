package render

import (
	"html"
	"strings"
)

// Document wraps body into a standalone HTML page. style is the output of
// Stylesheet and is inserted unescaped.
func Document(title, style, body string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset='utf-8'>\n")
	if title != "" {
		sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	}
	sb.WriteString(style)
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// Song wraps one rendered song so several can share a page.
func Song(id, body string) string {
	var sb strings.Builder
	sb.WriteString("<div class='song'")
	if id != "" {
		sb.WriteString(" id='" + html.EscapeString(id) + "'")
	}
	sb.WriteString(">\n")
	sb.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString("</div>\n")
	return sb.String()
}
