// Package mailer renders the affiliation notice and hands it to a delivery Sender.
//
// Rendering and delivery are separate. A Renderer turns markdown templates
// with YAML frontmatter into an HTML part (wrapped in a layout) and a plain
// text part. A Sender moves the finished Email through one provider: the
// resend and postmark subpackages call HTTP APIs, the smtp subpackage speaks
// SMTP directly and can walk a list of fallback transports.
//
//	sender := resend.New(resend.Config{APIKey: key})
//	m := mailer.New(sender, mailer.NewRenderer(mailer.Templates()), mailer.Config{
//		From:          "formularios@example.com",
//		To:            "afiliaciones@example.com",
//		DefaultLayout: mailer.DefaultLayout,
//	})
//
//	receipt, err := m.Send(ctx, mailer.SendParams{
//		Template:    mailer.AffiliationTemplate,
//		Data:        data,
//		Attachments: []mailer.Attachment{{Filename: "form.pdf", ContentType: "application/pdf", Content: pdf}},
//	})
//
// # Templates
//
// The built-in templates live under templates/ and are returned by Templates.
// The subject comes from SendParams.Subject, then the "Subject" frontmatter
// key, then Config.FallbackSubject, and may use {{.Field}} placeholders.
// Single newlines in a template become <br> in the HTML part.
//
// # Errors
//
// Senders report refused deliveries as *DeliveryError, whose Detail is the
// provider's own explanation. Missing provider settings are reported as
// *ConfigError, which matches ErrMissingConfig.
package mailer
