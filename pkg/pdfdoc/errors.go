package pdfdoc

import "errors"

var (
	// ErrRenderFailed indicates the PDF engine reported an error while composing.
	ErrRenderFailed = errors.New("pdfdoc: failed to render document")

	// ErrUnsupportedImage indicates an image format the PDF engine cannot embed.
	ErrUnsupportedImage = errors.New("pdfdoc: unsupported image format")
)
