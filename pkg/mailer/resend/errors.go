package resend

import "errors"

// ErrSendFailed indicates the Resend API rejected the message.
var ErrSendFailed = errors.New("resend: failed to send email")
