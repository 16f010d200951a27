package api

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/midpointplace/midpoint/internal/client/models"
	"github.com/midpointplace/midpoint/internal/common"
	"github.com/midpointplace/midpoint/internal/logging"
)

const maxErrorBody = 1 << 20

// TokenSource yields the current bearer token, or "" when there is none.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Reporter receives the display message of every failed call.
type Reporter interface {
	SetError(message string)
}

// Recorder counts outbound calls. Status is 0 for transport failures.
type Recorder interface {
	ObserveRequest(op string, status int)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	errs    Reporter
	log     logging.Logger
	metrics Recorder

	mu           sync.RWMutex
	defaultToken string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request, connection setup included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// New builds a Client for the API rooted at baseURL.
func New(baseURL string, tokens TokenSource, errs Reporter, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		errs:    errs,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken sets the token used when the TokenSource has none, e.g. in the
// window between a login response and the token being persisted. An empty
// token clears it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.defaultToken = token
	c.mu.Unlock()
}

// AuthToken returns the default token set with SetAuthToken.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultToken
}

func (c *Client) bearer(ctx context.Context) string {
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			return token
		}
	}
	return c.AuthToken()
}

// fail publishes err to the Reporter and returns it unchanged.
func (c *Client) fail(err error) error {
	if c.errs != nil {
		c.errs.SetError(err.Error())
	}
	return err
}

func (c *Client) observe(op string, status int) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(op, status)
	}
}

// do performs one call. in, when non-nil, is validated and sent as JSON; out,
// when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		if err := models.Validate(in); err != nil {
			return &Error{Op: op, kind: models.ErrValidation, cause: err}
		}
		buf, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, kind: ErrRequestFailed, cause: err}
		}
		body = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &Error{Op: op, kind: ErrRequestFailed, cause: err}
	}

	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if token := c.bearer(ctx); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0)
		c.log.Warn(ctx, "api request failed", "op", op, "request_id", reqID, "error", err)
		return &Error{Op: op, kind: ErrUnavailable, cause: err}
	}
	defer resp.Body.Close()

	c.observe(op, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er models.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, &er)

		c.log.Warn(ctx, "api request rejected", "op", op, "request_id", reqID, "status", resp.StatusCode, "message", er.Message)
		return &Error{Op: op, Status: resp.StatusCode, Message: er.Message, kind: kindForStatus(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &Error{Op: op, Status: resp.StatusCode, kind: ErrRequestFailed, cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
