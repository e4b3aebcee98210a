// Package pdfdoc composes the printable affiliation form.
//
// The layout is a letter-size page in millimetres: a branded header band,
// a title bar, the personal data section and the payroll authorization
// section, each drawn as labeled boxes. Sections that do not fit on the
// current page move to a new one, and a final pass stamps every page with
// "n de total".
//
//	doc, err := pdfdoc.Render(record)
//	if err != nil {
//	    return err
//	}
//	_, err = doc.WriteTo(w)
//
// Signature images and the logo are embedded when they decode; a broken
// image leaves an empty frame (or the "LOGO" placeholder) instead of
// failing the render.
package pdfdoc
