package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sindegeologico/sindeform/pkg/form"
)

func signaturePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 10, G: 10, B: uint8(x % 255), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return form.EncodeDataURL("image/png", buf.Bytes())
}

func filledRecord() form.Record {
	r := form.Defaults()
	r.Nombres = "Ana María"
	r.Apellidos = "Rodríguez"
	r.CC1 = "52123456"
	r.De1 = "Bogotá"
	r.Ciudad = "Bogotá"
	r.Correo = "ana@example.com"
	return form.Derive(r).Apply(r)
}

func render(t *testing.T, r form.Record, opts ...Option) (*Document, string) {
	t.Helper()

	opts = append([]Option{WithCompression(false), WithCreationDate(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))}, opts...)
	doc, err := Render(r, opts...)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc, string(doc.Bytes())
}

func requireFooters(t *testing.T, out string, total int) {
	t.Helper()

	for n := 1; n <= total; n++ {
		require.Contains(t, out, fmt.Sprintf("(%d de %d) Tj", n, total))
	}
	require.NotContains(t, out, fmt.Sprintf("(%d de %d) Tj", total+1, total+1))
	require.Equal(t, total, strings.Count(out, fmt.Sprintf(" de %d) Tj", total)))
}

func TestRender_DefaultRecord(t *testing.T) {
	t.Parallel()

	doc, out := render(t, form.Defaults())

	require.True(t, strings.HasPrefix(out, "%PDF-"))
	require.Equal(t, 2, doc.PageCount())
	requireFooters(t, out, 2)
	require.Contains(t, out, "(N/A) Tj", "empty values print N/A")
	require.Contains(t, out, "(DATOS PERSONALES) Tj")
}

func TestRender_FieldValues(t *testing.T) {
	t.Parallel()

	_, out := render(t, filledRecord())

	require.Contains(t, out, "(ana@example.com) Tj")
	require.Contains(t, out, "(52123456) Tj")
	require.Contains(t, out, "(Ana Mar\xeda Rodr\xedguez) Tj", "text is cp1252 encoded")
}

func TestRender_WhitespaceValueIsNA(t *testing.T) {
	t.Parallel()

	r := form.Defaults()
	r.AutorizacionTexto = "   "
	for _, f := range []string{form.FieldNombres, form.FieldApellidos, form.FieldFechaIngreso, form.FieldDependencia} {
		require.NoError(t, r.Set(f, " \t"))
	}
	_, out := render(t, r)

	require.NotContains(t, out, "( \t) Tj")
	require.Contains(t, out, "(N/A) Tj")
}

func TestRender_LongAuthorizationPaginates(t *testing.T) {
	t.Parallel()

	r := filledRecord()
	r.AutorizacionTexto = strings.Repeat("Autorizo el descuento mensual de la cuota sindical ordinaria. ", 400)

	doc, out := render(t, r)

	require.Greater(t, doc.PageCount(), 2)
	requireFooters(t, out, doc.PageCount())
	require.Contains(t, out, "(Autorizaci\xf3n \\(continuaci\xf3n\\)) Tj")
}

func TestRender_AuthorizationBoxGrows(t *testing.T) {
	t.Parallel()

	assert.Equal(t, authMinBox, authBoxHeight(0))
	assert.Equal(t, authMinBox, authBoxHeight(2))
	assert.InDelta(t, 9.8+20*authLineStep+2, authBoxHeight(20), 1e-9)
}

func TestRender_Signatures(t *testing.T) {
	t.Parallel()

	t.Run("embedded", func(t *testing.T) {
		t.Parallel()

		r := filledRecord()
		r, err := form.WithSignature(r, form.SlotAffiliation, signaturePNG(t, 300, 100))
		require.NoError(t, err)

		require.Equal(t, r.Firma1Image, r.Firma2Image)

		_, out := render(t, r, WithLogo(nil))
		require.Equal(t, 1, strings.Count(out, "/Subtype /Image"), "cloned signature is embedded once")
		require.Equal(t, 2, strings.Count(out, " Do Q"), "and drawn in both frames")
	})

	t.Run("distinct signatures embed separately", func(t *testing.T) {
		t.Parallel()

		r := filledRecord()
		r, err := form.WithSignature(r, form.SlotAffiliation, signaturePNG(t, 300, 100))
		require.NoError(t, err)
		r, err = form.WithSignature(r, form.SlotAuthorization, signaturePNG(t, 120, 80))
		require.NoError(t, err)

		_, out := render(t, r, WithLogo(nil))
		require.Equal(t, 2, strings.Count(out, "/Subtype /Image"))
	})

	t.Run("undecodable image leaves empty frame", func(t *testing.T) {
		t.Parallel()

		r := filledRecord()
		r.Firma1Image = "data:image/png;base64,AAAA"
		r.Firma2Image = "not a data url"

		doc, out := render(t, r, WithLogo(nil))
		require.Equal(t, 2, doc.PageCount())
		require.Zero(t, strings.Count(out, "/Subtype /Image"))
		require.Equal(t, 2, strings.Count(out, "(En constancia, firmo) Tj"))
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()

		r := filledRecord()
		r.Firma2Image = form.EncodeDataURL("image/webp", []byte("RIFF"))

		_, out := render(t, r, WithLogo(nil))
		require.Zero(t, strings.Count(out, "/Subtype /Image"))
	})
}

func TestRender_Logo(t *testing.T) {
	t.Parallel()

	t.Run("embedded logo", func(t *testing.T) {
		t.Parallel()

		_, out := render(t, form.Defaults())
		require.Equal(t, 1, strings.Count(out, "/Subtype /Image"))
		require.NotContains(t, out, "(LOGO) Tj")
	})

	t.Run("broken logo falls back to placeholder", func(t *testing.T) {
		t.Parallel()

		_, out := render(t, form.Defaults(), WithLogo([]byte("not a png")))
		require.Contains(t, out, "(LOGO) Tj")
	})
}

func TestFitImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		imgW, imgH float64
		wantW      float64
		wantH      float64
	}{
		{name: "wide image fills width", imgW: 400, imgH: 50, wantW: 100, wantH: 12.5},
		{name: "tall image fills height", imgW: 50, imgH: 100, wantW: 7.5, wantH: 15},
		{name: "same ratio", imgW: 200, imgH: 30, wantW: 100, wantH: 15},
		{name: "zero size treated as 1x1", imgW: 0, imgH: 0, wantW: 15, wantH: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := fitImage(tt.imgW, tt.imgH, 100, 15)
			assert.InDelta(t, tt.wantW, w, 1e-9)
			assert.InDelta(t, tt.wantH, h, 1e-9)
		})
	}
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	measure := func(s string) float64 { return float64(len(s)) }

	assert.Equal(t, []string{"uno dos", "tres"}, wrapText("uno dos tres", 8, measure))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrapText("abcdefghij", 4, measure))
	assert.Equal(t, []string{"a", "", "b"}, wrapText("a\n\nb", 10, measure))
	assert.Equal(t, []string{""}, wrapText("", 10, measure))
}

func TestEncodeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tel\xe9fono", encodeText("Teléfono"))
	assert.Equal(t, "50 A\xf1os", encodeText("50 Años"))
	assert.Equal(t, "?", encodeText("日"))
}

func TestOrNA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "N/A", orNA("  \n"))
	assert.Equal(t, " x ", orNA(" x "))
}

func TestDocument(t *testing.T) {
	t.Parallel()

	doc, _ := render(t, form.Defaults())

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(len(doc.Bytes())), n)
	require.NotEmpty(t, doc.Base64())
	require.NotContains(t, doc.Base64(), "data:")
}
