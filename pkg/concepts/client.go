package concepts

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/axiome/firstprinciples/pkg/errors"
	"github.com/axiome/firstprinciples/pkg/httputil"
)

// MessagePath is the server route for concept messages.
const MessagePath = "/api/concepts/message"

// Client talks to a running server's concept endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Attempts bounds retries of transient failures; zero means 3.
	Attempts int
	// Delay is the initial retry delay; zero means one second.
	Delay time.Duration
}

// NewClient returns a Client for baseURL such as "http://localhost:8000".
func NewClient(baseURL string) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Send posts message and returns the server's response. Network failures
// and 5xx responses are retried with exponential backoff.
func (c *Client) Send(ctx context.Context, message string) (*Response, error) {
	if err := Validate(Request{Message: message}); err != nil {
		return nil, err
	}

	backoff := httputil.DefaultBackoff
	if c.Attempts > 0 {
		backoff.Attempts = c.Attempts
	}
	if c.Delay > 0 {
		backoff.Delay = c.Delay
	}

	var resp Response
	err := backoff.Do(ctx, func() error {
		resp = Response{}
		return httputil.PostJSON(ctx, c.HTTP, c.BaseURL+MessagePath, Request{Message: message}, &resp)
	})
	if err != nil {
		var se *httputil.StatusError
		switch {
		case errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests:
			return nil, &errors.RateLimitedError{Message: se.Body}
		case errors.As(err, &se) && se.StatusCode < 500:
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "server rejected message")
		default:
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "send concept message")
		}
	}
	return &resp, nil
}
