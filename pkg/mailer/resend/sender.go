package resend

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v3"

	"github.com/sindegeologico/sindeform/pkg/mailer"
)

// Label identifies Resend deliveries in receipts.
const Label = "resend"

// emailSender is the part of the Resend client the sender uses.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails emailSender
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{emails: resend.NewClient(cfg.APIKey).Emails}
}

// Send implements mailer.Sender. Errors returned by the API are wrapped in
// a mailer.DeliveryError carrying Resend's message.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (mailer.Receipt, error) {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}
	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}

	resp, err := s.emails.SendWithContext(ctx, req)
	if err != nil {
		return mailer.Receipt{}, &mailer.DeliveryError{Detail: err.Error(), Err: errors.Join(ErrSendFailed, err)}
	}

	receipt := mailer.Receipt{Transport: Label}
	if resp != nil {
		receipt.MessageID = resp.Id
	}
	return receipt, nil
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
	}
	return result
}
