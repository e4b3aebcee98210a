package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) (Receipt, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(Receipt), args.Error(1)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Content}}</body></html>`),
		},
		"notice.md": &fstest.MapFile{
			Data: []byte(`---
Subject: Aviso para {{.Name}}
---
Hola **{{.Name}}**
`),
		},
		"plain.md": &fstest.MapFile{
			Data: []byte("Sin asunto\n"),
		},
	}
}

func testMailer(sender Sender) *Mailer {
	return New(sender, NewRenderer(testFS()), Config{
		From:            "forms@example.com",
		To:              "office@example.com",
		FallbackSubject: "Formulario",
		DefaultLayout:   "base.html",
	})
}

func TestMailer_Send_Success(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
		return email.To[0] == "office@example.com" &&
			email.From == "forms@example.com" &&
			email.Subject == "Aviso para Ana" &&
			email.Text == "Hola **Ana**" &&
			len(email.Attachments) == 1
	})).Return(Receipt{Transport: "mock", MessageID: "m-1"}, nil)

	receipt, err := testMailer(sender).Send(context.Background(), SendParams{
		Template: "notice.md",
		Data:     map[string]string{"Name": "Ana"},
		Attachments: []Attachment{
			{Filename: "f.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	})

	require.NoError(t, err)
	require.Equal(t, "mock", receipt.Transport)
	require.Equal(t, "m-1", receipt.MessageID)
	sender.AssertExpectations(t)
}

func TestMailer_Send_RecipientOverride(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
		return email.To[0] == "other@example.com" && email.From == "me@example.com"
	})).Return(Receipt{}, nil)

	_, err := testMailer(sender).Send(context.Background(), SendParams{
		To:       "other@example.com",
		From:     "me@example.com",
		Template: "notice.md",
		Data:     map[string]string{"Name": "Ana"},
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_NoRecipient(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := New(sender, NewRenderer(testFS()), Config{DefaultLayout: "base.html"})

	_, err := m.Send(context.Background(), SendParams{Template: "notice.md"})

	require.ErrorIs(t, err, ErrNoRecipient)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_NoSender(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := New(sender, NewRenderer(testFS()), Config{To: "office@example.com", DefaultLayout: "base.html"})

	_, err := m.Send(context.Background(), SendParams{Template: "notice.md", Data: map[string]string{"Name": "x"}})

	require.ErrorIs(t, err, ErrNoSender)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_RenderFailure(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}

	_, err := testMailer(sender).Send(context.Background(), SendParams{Template: "missing.md"})

	require.ErrorIs(t, err, ErrRenderFailed)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_SubjectResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		subject  string
		want     string
	}{
		{name: "from frontmatter", template: "notice.md", want: "Aviso para Ana"},
		{name: "explicit override", template: "notice.md", subject: "Urgente {{.Name}}", want: "Urgente Ana"},
		{name: "config fallback", template: "plain.md", want: "Formulario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			sender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
				return email.Subject == tt.want
			})).Return(Receipt{}, nil)

			_, err := testMailer(sender).Send(context.Background(), SendParams{
				Template: tt.template,
				Subject:  tt.subject,
				Data:     map[string]string{"Name": "Ana"},
			})

			require.NoError(t, err)
			sender.AssertExpectations(t)
		})
	}
}

func TestMailer_Send_DeliveryFailure(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).
		Return(Receipt{}, &DeliveryError{Detail: "domain not verified", Err: errors.New("403")})

	_, err := testMailer(sender).Send(context.Background(), SendParams{
		Template: "notice.md",
		Data:     map[string]string{"Name": "Ana"},
	})

	require.ErrorIs(t, err, ErrSendFailed)
	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "domain not verified", de.Detail)
}

func TestMailer_SendRaw_Validation(t *testing.T) {
	t.Parallel()

	valid := func() *Email {
		return &Email{
			To:      []string{"a@example.com"},
			From:    "b@example.com",
			Subject: "s",
			Text:    "t",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Email)
		want   error
	}{
		{name: "no recipient", mutate: func(e *Email) { e.To = nil }, want: ErrNoRecipient},
		{name: "no sender", mutate: func(e *Email) { e.From = "" }, want: ErrNoSender},
		{name: "no subject", mutate: func(e *Email) { e.Subject = "" }, want: ErrNoSubject},
		{name: "no content", mutate: func(e *Email) { e.Text = "" }, want: ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			email := valid()
			tt.mutate(email)

			_, err := testMailer(sender).SendRaw(context.Background(), email)
			require.ErrorIs(t, err, tt.want)
			sender.AssertNotCalled(t, "Send")
		})
	}

	t.Run("text only is enough", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		sender.On("Send", mock.Anything, mock.Anything).Return(Receipt{Transport: "x"}, nil)

		receipt, err := testMailer(sender).SendRaw(context.Background(), valid())
		require.NoError(t, err)
		require.Equal(t, "x", receipt.Transport)
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	cfgErr := &ConfigError{Message: "Faltan variables", Missing: []string{"EMAIL_FROM"}}
	require.ErrorIs(t, cfgErr, ErrMissingConfig)
	require.Equal(t, "Faltan variables", cfgErr.Error())

	cause := errors.New("boom")
	de := &DeliveryError{Err: cause}
	require.ErrorIs(t, de, ErrSendFailed)
	require.ErrorIs(t, de, cause)
	require.Equal(t, "boom", de.Error())
	require.Equal(t, ErrSendFailed.Error(), (&DeliveryError{}).Error())
}

func TestMailer_Recipient(t *testing.T) {
	t.Parallel()

	m := testMailer(&MockSender{})
	require.Equal(t, "office@example.com", m.Recipient(""))
	require.Equal(t, "x@example.com", m.Recipient("x@example.com"))
}
