package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/sindegeologico/sindeform/pkg/mailer"
)

// Label identifies Postmark deliveries in receipts.
const Label = "postmark"

// client is the part of the Postmark client the sender uses.
type client interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Sender implements mailer.Sender using Postmark's transactional API.
type Sender struct {
	client client
	stream string
}

// New creates a Postmark sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		stream: cfg.Stream,
	}
}

// Send implements mailer.Sender. Transport failures and non-zero Postmark
// error codes both come back as a mailer.DeliveryError.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (mailer.Receipt, error) {
	msg := postmark.Email{
		From:          email.From,
		To:            strings.Join(email.To, ","),
		ReplyTo:       email.ReplyTo,
		Subject:       email.Subject,
		HTMLBody:      email.HTML,
		TextBody:      email.Text,
		MessageStream: s.stream,
	}
	for name, value := range email.Headers {
		msg.Headers = append(msg.Headers, postmark.Header{Name: name, Value: value})
	}
	for _, a := range email.Attachments {
		msg.Attachments = append(msg.Attachments, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		})
	}

	resp, err := s.client.SendEmail(ctx, msg)
	if err != nil {
		return mailer.Receipt{}, &mailer.DeliveryError{Detail: err.Error(), Err: errors.Join(ErrSendFailed, err)}
	}
	if resp.ErrorCode > 0 {
		detail := fmt.Sprintf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
		return mailer.Receipt{}, &mailer.DeliveryError{Detail: detail, Err: ErrSendFailed}
	}

	return mailer.Receipt{Transport: Label, MessageID: resp.MessageID}, nil
}
