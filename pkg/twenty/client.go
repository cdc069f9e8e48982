// Package twenty is the REST transport for a Twenty CRM workspace.
package twenty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/crmerrors"
)

const DefaultTimeoutSecs = 30

// capturedHeaders are the response headers surfaced on transport errors.
var capturedHeaders = []string{"Content-Type", "Retry-After", "X-Request-Id"}

type authRoundTripper struct {
	base          http.RoundTripper
	authorization string
}

func (rt *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := rt.base
	if base == nil {
		base = http.DefaultTransport
	}
	if strings.TrimSpace(rt.authorization) == "" {
		return base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header = req.Header.Clone()
	if strings.TrimSpace(cloned.Header.Get("Authorization")) == "" {
		cloned.Header.Set("Authorization", rt.authorization)
	}
	return base.RoundTrip(cloned)
}

// Client issues authenticated requests against the workspace REST API.
// Cancellation and timeouts are the caller's concern via ctx; the client has
// no retry logic of its own.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	APIKey      string
	TimeoutSecs int
	Log         zerolog.Logger
}

// NewClient builds a client for the given workspace.
func NewClient(opts Options) *Client {
	timeout := opts.TimeoutSecs
	if timeout <= 0 {
		timeout = DefaultTimeoutSecs
	}
	authorization := ""
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		authorization = "Bearer " + key
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		http: &http.Client{
			Timeout:   time.Duration(timeout) * time.Second,
			Transport: &authRoundTripper{base: http.DefaultTransport, authorization: authorization},
		},
		log: opts.Log.With().Str("component", "twenty-client").Logger(),
	}
}

// Request performs one HTTP call and returns the raw response body.
// Non-2xx responses return a *crmerrors.HTTPError carrying the decoded body
// and a subset of response headers.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", method, endpoint, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.httpError(resp, method, endpoint, payload)
	}
	return payload, nil
}

// RequestJSON performs a call and decodes the response body. The raw body is
// returned alongside the decoded value for callers that probe it directly.
func (c *Client) RequestJSON(ctx context.Context, method, endpoint string, body any) (any, []byte, error) {
	raw, err := c.Request(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, raw, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Non-JSON 2xx bodies are passed through as raw text.
		return string(raw), raw, nil
	}
	return decoded, raw, nil
}

func (c *Client) httpError(resp *http.Response, method, endpoint string, payload []byte) error {
	var body any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &body); err != nil {
			body = string(payload)
		}
	}
	headers := make(map[string]string)
	for _, name := range capturedHeaders {
		if v := resp.Header.Get(name); v != "" {
			headers[name] = v
		}
	}
	return &crmerrors.HTTPError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       body,
		Endpoint:   endpoint,
		Method:     method,
		Headers:    headers,
	}
}
