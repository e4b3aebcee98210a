package relayclient

import (
	"errors"
	"fmt"
)

var (
	// ErrRelayRejected indicates the relay answered but did not send the mail.
	ErrRelayRejected = errors.New("relay rejected the request")

	// ErrUnexpectedResponse indicates the relay's answer could not be decoded.
	ErrUnexpectedResponse = errors.New("unexpected relay response")
)

// RelayError is a refusal reported by the relay itself.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned status %d", e.Status)
	}
	return e.Message
}

// Is makes RelayError match ErrRelayRejected.
func (e *RelayError) Is(target error) bool { return target == ErrRelayRejected }
