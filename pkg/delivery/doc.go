// Package delivery picks the mail Sender for the relay from MAIL_STRATEGY
// and checks that the chosen strategy has the settings it needs.
//
// Strategies:
//
//   - resend: Resend HTTP API (default)
//   - postmark: Postmark HTTP API
//   - smtp: one SMTP transport
//   - smtp-fallback: the configured SMTP transport, then 587/STARTTLS, then 465/TLS
package delivery
