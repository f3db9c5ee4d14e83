// Package promptclient issues prompt generation requests against the
// ambient-prompt API and classifies every failure into an ErrorKind.
package promptclient

import (
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

	"github.com/joestump/ambient-prompt/internal/build"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

const maxBodyBytes = 1 << 20

var errDeadline = errors.New("prompt request deadline exceeded")

// Client calls the generation endpoint. It performs no retries.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type promptBody struct {
	Prompt string `json:"prompt"`
}

type examplesBody struct {
	Examples []string `json:"examples"`
}

type errorBody struct {
	Error string `json:"error"`
}

// RequestPrompt asks the endpoint for a prompt built from seed. A failed call
// always returns a *Error.
func (c *Client) RequestPrompt(ctx context.Context, seed string) (string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return "", &Error{Kind: InvalidInput, Detail: "Seed concept must not be empty."}
	}

	q := url.Values{"concept": {seed}}
	body, err := c.get(ctx, "/api/initial-prompt?"+q.Encode())
	if err != nil {
		return "", err
	}

	var resp promptBody
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &Error{Kind: Unknown, Detail: "Received an unreadable response from the server.", Err: err}
	}
	if resp.Prompt == "" {
		return "", &Error{Kind: Unknown, Detail: "Received an empty prompt from the server."}
	}
	return resp.Prompt, nil
}

// Examples fetches the example seed concepts offered by the server.
func (c *Client) Examples(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/examples")
	if err != nil {
		return nil, err
	}
	var resp examplesBody
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: Unknown, Detail: "Received an unreadable response from the server.", Err: err}
	}
	return resp.Examples, nil
}

// get performs one GET under the client deadline and returns the body of a
// 2xx response. The deadline timer is released on every return path.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, errDeadline)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &Error{Kind: Unknown, Detail: "Could not build the request.", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", build.UserAgent())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: kindForStatus(resp.StatusCode), Detail: statusMessage(resp.StatusCode, body)}
	}
	return body, nil
}

// classifyTransport decides between Timeout, caller cancellation and a
// network failure once the round trip itself has failed.
func classifyTransport(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(context.Cause(ctx), errDeadline), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: Timeout, Detail: TimeoutMessage, Err: context.DeadlineExceeded}
	case ctx.Err() != nil:
		return &Error{Kind: Unknown, Detail: "Request was cancelled.", Err: ctx.Err()}
	default:
		return &Error{Kind: NetworkError, Detail: "Could not reach the prompt server. Check your connection and try again.", Err: err}
	}
}

// statusMessage prefers the server's error field and falls back to the status line.
func statusMessage(code int, body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		text := http.StatusText(code)
		if text == "" {
			text = "Unknown error"
		}
		return fmt.Sprintf("API request failed with status %d: %s", code, text)
	}
	if e.Error != "" {
		return e.Error
	}
	return fmt.Sprintf("API request failed with status %d", code)
}
