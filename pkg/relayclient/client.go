package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sindegeologico/sindeform/pkg/form"
)

// SendPath is the relay route that mails a PDF.
const SendPath = "/api/send-pdf"

// DefaultTimeout bounds one send when no http.Client is supplied.
const DefaultTimeout = 2 * time.Minute

const maxResponseSize = 1 << 20

// MailRequest is the body of POST /api/send-pdf.
type MailRequest struct {
	PDFBase64 string       `json:"pdfBase64"`
	FileName  string       `json:"fileName,omitempty"`
	FormData  *form.Record `json:"formData,omitempty"`
}

// Result is the relay's answer to every request.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Client talks to one relay.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// New creates a client for the relay at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendPDF posts req and returns the relay's result.
// A result with OK=false is returned together with a *RelayError.
func (c *Client) SendPDF(ctx context.Context, req MailRequest) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SendPath, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("post %s: %w", SendPath, err)
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&res); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return Result{}, &RelayError{Status: resp.StatusCode}
		}
		return Result{}, errors.Join(ErrUnexpectedResponse, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices || !res.OK {
		return res, &RelayError{Status: resp.StatusCode, Message: res.Message}
	}
	return res, nil
}
