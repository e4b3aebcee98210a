package delivery

import "errors"

// ErrUnknownStrategy is returned for MAIL_STRATEGY values not listed in Strategies.
var ErrUnknownStrategy = errors.New("delivery: unknown mail strategy")
