package pdfdoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/sindegeologico/sindeform/pkg/form"
)

// fitImage scales an image of imgW×imgH to fit inside maxW×maxH
// while preserving its aspect ratio.
func fitImage(imgW, imgH, maxW, maxH float64) (float64, float64) {
	if imgW <= 0 {
		imgW = 1
	}
	if imgH <= 0 {
		imgH = 1
	}
	imgRatio := imgW / imgH
	if imgRatio > maxW/maxH {
		return maxW, maxW / imgRatio
	}
	return maxH * imgRatio, maxH
}

func imageType(mediaType string) (string, error) {
	switch mediaType {
	case "image/png":
		return "PNG", nil
	case "image/jpeg", "image/jpg", "image/pjpeg":
		return "JPG", nil
	case "image/gif":
		return "GIF", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mediaType)
}

// registerImage loads raw image bytes into the document and returns the
// engine's image info. A decode failure is cleared from the engine so the
// rest of the document keeps rendering.
func registerImage(pdf *fpdf.Fpdf, name, typ string, raw []byte) (*fpdf.ImageInfoType, error) {
	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: typ}, bytes.NewReader(raw))
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, typ)
	}
	return info, nil
}

// imageName keys an image by its content, so a signature repeated in
// both slots is embedded once and drawn twice.
func imageName(dataURL string) string {
	sum := sha256.Sum256([]byte(dataURL))
	return "firma-" + hex.EncodeToString(sum[:8])
}

// registerDataURL decodes a signature data URL and loads it into the document.
func registerDataURL(pdf *fpdf.Fpdf, name, dataURL string) (*fpdf.ImageInfoType, error) {
	mediaType, raw, err := form.DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	typ, err := imageType(mediaType)
	if err != nil {
		return nil, err
	}
	return registerImage(pdf, name, typ, raw)
}
