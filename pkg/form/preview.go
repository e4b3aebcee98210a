package form

const (
	// MarkerLoaded replaces signature data in previews when an image is present.
	MarkerLoaded = "[Imagen cargada]"
	// MarkerMissing replaces signature data in previews when no image is present.
	MarkerMissing = "[Sin firma]"
)

// Preview is a record safe for display: signature fields carry presence markers.
type Preview Record

// NewPreview redacts the signature images of r.
func NewPreview(r Record) Preview {
	p := Preview(r)
	p.Firma1Image = marker(r.Firma1Image)
	p.Firma2Image = marker(r.Firma2Image)
	return p
}

func marker(image string) string {
	if image != "" {
		return MarkerLoaded
	}
	return MarkerMissing
}
