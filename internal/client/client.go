// ABOUTME: HTTP client for the event platform admin API
// ABOUTME: Attaches bearer tokens, parses response envelopes and normalizes errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every request unless overridden
const DefaultTimeout = 30 * time.Second

// ErrUnauthorized matches any APIError carrying a 401 status
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response or a response that does not match its schema
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client is the API client for the admin backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          func() string
	onUnauthorized func(token string)
	logger         zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets the function consulted for the bearer token on each request
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithUnauthorizedHandler sets the hook run when an authenticated request gets a 401.
// It receives the token the rejected request carried.
func WithUnauthorizedHandler(fn func(token string)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the debug logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		token:  func() string { return "" },
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the shape every endpoint answers with
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// request describes one API call
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	authed      bool
}

func jsonRequest(method, path string, payload any) (request, error) {
	req := request{method: method, path: path, authed: true}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("failed to marshal input: %w", err)
		}
		req.body = bytes.NewReader(data)
		req.contentType = "application/json"
	}
	return req, nil
}

// do performs the request and decodes the data field into out (when non-nil).
// It returns the server's message field for endpoints that only answer with one.
func (c *Client) do(ctx context.Context, r request, out any) (string, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	var sent string
	if r.authed {
		if sent = c.token(); sent != "" {
			req.Header.Set("Authorization", "Bearer "+sent)
		}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", r.method).
		Str("path", r.path).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("api response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.handleErrorResponse(resp)
		if resp.StatusCode == http.StatusUnauthorized && r.authed && c.onUnauthorized != nil {
			c.logger.Warn().Str("path", r.path).Msg("authorization rejected, ending session")
			c.onUnauthorized(sent)
		}
		return "", apiErr
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) && out == nil {
			return "", nil
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("invalid response from backend: %v", err)}
	}

	if out != nil {
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return "", &APIError{StatusCode: resp.StatusCode, Message: "invalid response from backend: missing data"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("invalid response from backend: %v", err)}
		}
	}

	return env.Message, nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled: %w", context.Canceled)
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out: %w", context.DeadlineExceeded)
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses, preferring the server's message
func (c *Client) handleErrorResponse(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status %d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apiErr
	}
	switch {
	case strings.TrimSpace(env.Message) != "":
		apiErr.Message = env.Message
	case strings.TrimSpace(env.Error) != "":
		apiErr.Message = env.Error
	}
	return apiErr
}
