package postmark

import "errors"

// ErrSendFailed indicates the Postmark API rejected the message.
var ErrSendFailed = errors.New("postmark: failed to send email")
