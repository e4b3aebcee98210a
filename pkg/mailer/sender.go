package mailer

import "context"

// Sender delivers a fully prepared Email through one provider or transport.
type Sender interface {
	// Send delivers the message. The Email must have From, To, Subject and
	// a body already set. The receipt names what accepted the message.
	Send(ctx context.Context, email *Email) (Receipt, error)
}

// Receipt describes an accepted delivery.
type Receipt struct {
	// Transport labels the route that accepted the message, e.g. "resend"
	// or "smtp.example.com:465 secure=true".
	Transport string

	// MessageID is the provider's id for the message, when it returns one.
	MessageID string
}
