// Package sanitizer scrubs user-supplied form values before they reach
// email bodies, headers and attachment names.
package sanitizer

import (
	"html"
	"path"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// PlainText strips all markup and returns the visible text.
// Entities escaped by the policy are decoded back so the result is raw text.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// Line returns PlainText collapsed onto a single trimmed line.
// Control characters and runs of whitespace become one space.
func Line(s string) string {
	s = PlainText(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Filename returns a safe attachment name: no directories, no markup,
// no control characters. Empty results fall back to def.
func Filename(name, def string) string {
	name = strings.ReplaceAll(Line(name), "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '<', '>', ':', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return def
	}
	return name
}
