package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/go-gomail/gomail"
)

// Preset ports tried after the configured transport.
const (
	SubmissionPort = 587 // STARTTLS
	SMTPSPort      = 465 // implicit TLS
)

// Per-attempt limits. The greeting and connect limits never extend past
// the attempt deadline, which itself never extends past the caller's.
const (
	ConnectTimeout        = 10 * time.Second
	GreetingTimeout       = 20 * time.Second
	DefaultAttemptTimeout = 25 * time.Second
)

// Transport is one way of reaching the SMTP server.
type Transport struct {
	Host   string
	Port   int
	Secure bool
}

// Label identifies the transport in receipts and diagnostics.
func (t Transport) Label() string {
	return fmt.Sprintf("%s:%d secure=%t", t.Host, t.Port, t.Secure)
}

func (t Transport) addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// FallbackTransports returns the configured transport followed by the
// submission and SMTPS presets on the same host, without duplicates.
func FallbackTransports(primary Transport) []Transport {
	candidates := []Transport{
		primary,
		{Host: primary.Host, Port: SubmissionPort, Secure: false},
		{Host: primary.Host, Port: SMTPSPort, Secure: true},
	}

	seen := make(map[Transport]struct{}, len(candidates))
	out := make([]Transport, 0, len(candidates))
	for _, t := range candidates {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DialFunc opens an authenticated connection for one transport.
// A successful dial means the server answered and accepted the credentials.
// The connection must not outlive ctx.
type DialFunc func(ctx context.Context, t Transport) (gomail.SendCloser, error)

// Dialer returns a DialFunc that authenticates with the config credentials
// and bounds every attempt by cfg.Timeout (DefaultAttemptTimeout when unset).
func Dialer(cfg Config) DialFunc {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}

	return func(ctx context.Context, t Transport) (gomail.SendCloser, error) {
		deadline := time.Now().Add(timeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}

		nd := net.Dialer{Timeout: ConnectTimeout, Deadline: deadline}
		conn, err := nd.DialContext(ctx, "tcp", t.addr())
		if err != nil {
			return nil, err
		}
		// Unblocks any read or write in flight once ctx is done.
		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

		s, err := handshake(conn, t, cfg, deadline)
		if err != nil {
			stop()
			_ = conn.Close()
			return nil, err
		}
		s.stop = stop
		return s, nil
	}
}

// handshake reads the greeting, upgrades to TLS and authenticates.
func handshake(conn net.Conn, t Transport, cfg Config, deadline time.Time) (*session, error) {
	tlsConfig := &tls.Config{ServerName: t.Host, MinVersion: tls.VersionTLS12}
	if t.Secure {
		conn = tls.Client(conn, tlsConfig)
	}

	greeting := time.Now().Add(GreetingTimeout)
	if deadline.Before(greeting) {
		greeting = deadline
	}
	if err := conn.SetDeadline(greeting); err != nil {
		return nil, err
	}

	c, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = c.Close()
		return nil, err
	}

	if !t.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				_ = c.Close()
				return nil, err
			}
		}
	}

	if cfg.Username != "" {
		if ok, mechs := c.Extension("AUTH"); ok {
			if err := c.Auth(pickAuth(mechs, t.Host, cfg)); err != nil {
				_ = c.Close()
				return nil, err
			}
		}
	}

	return &session{client: c}, nil
}

// pickAuth prefers CRAM-MD5, then PLAIN, then LOGIN, as gomail does.
func pickAuth(mechs, host string, cfg Config) smtp.Auth {
	switch {
	case strings.Contains(mechs, "CRAM-MD5"):
		return smtp.CRAMMD5Auth(cfg.Username, cfg.Password)
	case strings.Contains(mechs, "LOGIN") && !strings.Contains(mechs, "PLAIN"):
		return &loginAuth{username: cfg.Username, password: cfg.Password}
	default:
		return smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
}

// session is one authenticated SMTP connection. It implements gomail.SendCloser.
type session struct {
	client *smtp.Client
	stop   func() bool
}

// Send runs MAIL, RCPT and DATA. Reply errors come back as *textproto.Error.
func (s *session) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.client.Mail(from); err != nil {
		return err
	}
	for _, addr := range to {
		if err := s.client.Rcpt(addr); err != nil {
			return err
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Close says QUIT and releases the connection.
func (s *session) Close() error {
	if s.stop != nil {
		defer s.stop()
	}
	if err := s.client.Quit(); err != nil {
		_ = s.client.Close()
		return err
	}
	return nil
}

// loginAuth implements the LOGIN mechanism, which net/smtp lacks.
type loginAuth struct {
	username string
	password string
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS && !advertises(server.Auth, "LOGIN") {
		return "", nil, ErrUnencryptedAuth
	}
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(string(fromServer))) {
	case "username:":
		return []byte(a.username), nil
	case "password:":
		return []byte(a.password), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnexpectedChallenge, fromServer)
}

func advertises(mechs []string, name string) bool {
	for _, m := range mechs {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}
