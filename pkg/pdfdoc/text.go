package pdfdoc

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// encodeText converts s to cp1252 bytes for the core PDF fonts, which use
// WinAnsiEncoding. Runes outside the code page become "?".
func encodeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// orNA returns "N/A" for empty or whitespace-only values.
func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}

// wrapText breaks already-encoded text into lines no wider than width,
// measured with the current font. Explicit newlines start a new line and
// words wider than the line are split by character.
func wrapText(s string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for measure(word) > width && len(word) > 1 {
				cut := len(word) - 1
				for cut > 1 && measure(word[:cut]) > width {
					cut--
				}
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
