package mailer

// Email is a message ready for a Sender.
type Email struct {
	Headers     map[string]string
	Subject     string
	HTML        string
	Text        string
	From        string
	ReplyTo     string
	To          []string
	Attachments []Attachment
}

// Attachment is a file carried inline in the message.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	Content     []byte // Raw file content
}
