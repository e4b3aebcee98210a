package form

import "errors"

var (
	// ErrUnknownField indicates the field name is not part of the form.
	ErrUnknownField = errors.New("form: unknown field")

	// ErrReadOnlyField indicates the field is derived and cannot be assigned.
	ErrReadOnlyField = errors.New("form: field is read-only")

	// ErrUnknownSlot indicates the signature slot is neither 1 nor 2.
	ErrUnknownSlot = errors.New("form: unknown signature slot")

	// ErrNotImage indicates the uploaded content is not an image.
	ErrNotImage = errors.New("form: content is not an image")

	// ErrCorruptSnapshot indicates a persisted snapshot could not be decoded.
	ErrCorruptSnapshot = errors.New("form: corrupt snapshot")

	// ErrInvalidDataURL indicates a signature value is not a base64 data URL.
	ErrInvalidDataURL = errors.New("form: invalid data URL")
)
