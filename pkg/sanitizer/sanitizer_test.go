package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sindegeologico/sindeform/pkg/sanitizer"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips script injection", input: `<p>Ana</p><script>alert('xss')</script>`, expected: "Ana"},
		{name: "strips nested tags", input: `<div><b>Ana</b> <i>Pérez</i></div>`, expected: "Ana Pérez"},
		{name: "keeps ampersands", input: "Geología & Minas", expected: "Geología & Minas"},
		{name: "keeps quotes", input: `O'Neil "Ana"`, expected: `O'Neil "Ana"`},
		{name: "keeps newlines", input: "a\nb", expected: "a\nb"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.PlainText(tt.input))
		})
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "header injection", input: "Ana\r\nBcc: x@evil.com", expected: "Ana Bcc: x@evil.com"},
		{name: "collapses whitespace", input: "  Ana \t  Pérez  ", expected: "Ana Pérez"},
		{name: "strips markup", input: "<b>Bogotá</b>\n", expected: "Bogotá"},
		{name: "only whitespace", input: " \n\t ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Line(tt.input))
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	const def = "formulario.pdf"

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "solicitud.pdf", expected: "solicitud.pdf"},
		{name: "unix traversal", input: "../../etc/passwd", expected: "passwd"},
		{name: "windows path", input: `C:\Users\ana\firma.pdf`, expected: "firma.pdf"},
		{name: "reserved characters", input: `a"b<c>.pdf`, expected: "a_b_c_.pdf"},
		{name: "empty", input: "", expected: def},
		{name: "dots", input: "..", expected: def},
		{name: "trailing slash", input: "dir/", expected: "dir"},
		{name: "markup only", input: "<script></script>", expected: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Filename(tt.input, def))
		})
	}
}
