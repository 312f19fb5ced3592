package render

import (
	"fmt"
	"strings"
)

// Themes accepted by Stylesheet.
const (
	ThemeDefault = "default"
	ThemePrint   = "print"
)

const baseCSS = `.t_directive {
    font-size: 40px;
}
.st_directive {
    font-size: 30px;
}
.c_directive {
    font-size: 20px;
}
.chordline {
    font-size: 10px;
}
.lyricline {
    font-size: 15px;
}
.song-line {
    display: block;
    white-space: pre;
}
.song-linesegment {
    display: inline-flex;
    flex-direction: column;
    vertical-align: bottom;
}
.song-title {
    font-size: 1.6em;
    font-weight: bold;
}
.song-subtitle {
    font-size: 1.2em;
}
.song-comment {
    font-style: italic;
}
`

var themeCSS = map[string]string{
	ThemeDefault: `.song-chord, .song-chord-nolyrics {
    color: #1a5fb4;
    font-weight: bold;
}
.song-section {
    color: #613583;
}
`,
	ThemePrint: `.song-chord, .song-chord-nolyrics {
    color: #000;
    font-weight: bold;
}
.song-section {
    text-decoration: underline;
}
`,
}

// Stylesheet returns the <style> element for theme followed by extra CSS.
func Stylesheet(theme, extra string) (string, error) {
	if theme == "" {
		theme = ThemeDefault
	}
	t, ok := themeCSS[theme]
	if !ok {
		return "", fmt.Errorf("unknown theme %q", theme)
	}
	var sb strings.Builder
	sb.WriteString("<style>\n")
	sb.WriteString(baseCSS)
	sb.WriteString(t)
	if extra != "" {
		sb.WriteString(extra)
		if !strings.HasSuffix(extra, "\n") {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("</style>\n")
	return sb.String(), nil
}

// Themes lists the known theme names.
func Themes() []string {
	return []string{ThemeDefault, ThemePrint}
}
