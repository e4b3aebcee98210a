package composer

import "errors"

// ErrNotEditable is returned by edits attempted while the form is under review.
var ErrNotEditable = errors.New("composer: form is under review")
