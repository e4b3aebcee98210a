package form

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Slot identifies one of the two places the signature appears on the document.
type Slot int

const (
	// SlotAffiliation is the signature under the personal data section.
	SlotAffiliation Slot = 1
	// SlotAuthorization is the signature under the payroll authorization.
	SlotAuthorization Slot = 2
)

// Field returns the record field backing the slot.
func (s Slot) Field() (string, error) {
	switch s {
	case SlotAffiliation:
		return FieldFirma1, nil
	case SlotAuthorization:
		return FieldFirma2, nil
	}
	return "", ErrUnknownSlot
}

// IsImageType reports whether a MIME type denotes an image.
func IsImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// ReadDataURL reads the whole image into a base64 data URL.
// Non-image content types are rejected with ErrNotImage before reading.
func ReadDataURL(r io.Reader, contentType string) (string, error) {
	if !IsImageType(contentType) {
		return "", ErrNotImage
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("form: read image: %w", err)
	}
	return EncodeDataURL(contentType, raw), nil
}

// EncodeDataURL builds a data URL from a MIME type and raw bytes.
func EncodeDataURL(contentType string, raw []byte) string {
	mediaType, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// DecodeDataURL splits a base64 data URL into its MIME type and payload.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mediaType, params, _ := strings.Cut(meta, ";")
	if !strings.Contains(params, "base64") {
		return "", nil, ErrInvalidDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return strings.ToLower(mediaType), raw, nil
}

// WithSignature returns a copy of r with image data stored in the slot.
// Writing the affiliation slot also clones the image into the authorization slot.
func WithSignature(r Record, slot Slot, dataURL string) (Record, error) {
	switch slot {
	case SlotAffiliation:
		r.Firma1Image = dataURL
		r.Firma2Image = dataURL
	case SlotAuthorization:
		r.Firma2Image = dataURL
	default:
		return r, ErrUnknownSlot
	}
	return r, nil
}

// WithoutSignature returns a copy of r with the slot cleared.
// Clearing the affiliation slot clears its clone too.
func WithoutSignature(r Record, slot Slot) (Record, error) {
	return WithSignature(r, slot, "")
}
