package smtp

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"strconv"
	"strings"
)

var (
	// ErrNoTransports indicates the sender has nothing to try.
	ErrNoTransports = errors.New("smtp: no transports configured")

	// ErrAllAttemptsFailed indicates every transport refused the message.
	ErrAllAttemptsFailed = errors.New("smtp: all delivery attempts failed")

	// ErrInvalidAddress indicates a sender or recipient that is not an email address.
	ErrInvalidAddress = errors.New("smtp: invalid address")

	// ErrUnencryptedAuth indicates LOGIN was refused over a plain connection.
	ErrUnencryptedAuth = errors.New("smtp: unencrypted connection")

	// ErrUnexpectedChallenge indicates a LOGIN prompt the client does not know.
	ErrUnexpectedChallenge = errors.New("smtp: unexpected server challenge")
)

// Attempt error codes.
const (
	CodeConnection = "ECONNECTION"
	CodeAuth       = "EAUTH"
	CodeTimeout    = "ETIMEDOUT"
	CodeEnvelope   = "EENVELOPE"
	CodeMessage    = "EMESSAGE"
)

type phase int

const (
	phaseDial phase = iota
	phaseEnvelope
	phaseSend
)

// AttemptError describes why one transport failed.
type AttemptError struct {
	Err          error
	Transport    Transport
	Code         string // One of the Code* constants
	Message      string // Error text
	Response     string // Server reply text, when the server answered
	ResponseCode int    // SMTP reply code, when the server answered
}

func (e *AttemptError) Error() string { return e.Detail() }

func (e *AttemptError) Unwrap() error { return e.Err }

// Detail joins label, code, reply code, message and reply text with " | ",
// skipping empty parts.
func (e *AttemptError) Detail() string {
	parts := []string{e.Transport.Label()}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	if e.ResponseCode > 0 {
		parts = append(parts, strconv.Itoa(e.ResponseCode))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Response != "" && e.Response != e.Message {
		parts = append(parts, e.Response)
	}
	return strings.Join(parts, " | ")
}

func classify(t Transport, p phase, err error) *AttemptError {
	ae := &AttemptError{Transport: t, Message: err.Error(), Err: err}

	var reply *textproto.Error
	if errors.As(err, &reply) {
		ae.ResponseCode = reply.Code
		ae.Response = reply.Msg
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		ae.Code = CodeTimeout
	case p == phaseEnvelope:
		ae.Code = CodeEnvelope
	case p == phaseDial && reply != nil && isAuthReply(reply.Code):
		ae.Code = CodeAuth
	case p == phaseDial && errors.Is(err, ErrUnencryptedAuth):
		ae.Code = CodeAuth
	case p == phaseDial:
		ae.Code = CodeConnection
	case reply != nil && isEnvelopeReply(reply.Code):
		ae.Code = CodeEnvelope
	default:
		ae.Code = CodeMessage
	}
	return ae
}

func isAuthReply(code int) bool {
	switch code {
	case 454, 530, 534, 535, 538:
		return true
	}
	return false
}

func isEnvelopeReply(code int) bool {
	switch code {
	case 501, 503, 550, 551, 553:
		return true
	}
	return false
}
