package pdfdoc

import (
	"bytes"
	"encoding/base64"
	"io"
)

// FileName is the name used when the document is saved or attached.
const FileName = "formulario-sindegeologico.pdf"

// Document is a fully composed PDF.
type Document struct {
	data  []byte
	pages int
}

// Bytes returns the raw PDF.
func (d *Document) Bytes() []byte { return d.data }

// Base64 returns the PDF encoded with standard base64, without a data URL prefix.
func (d *Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.data)
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.pages }

// WriteTo implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(d.data).WriteTo(w)
}
