package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

// Credentials is the client's view of the credential store. The session
// package provides the real implementation; the client only ever reads and
// replaces the token pair through this interface, never the rest of the
// session state.
type Credentials interface {
	Tokens() (accessToken, refreshToken string)
	SetTokens(accessToken, refreshToken string) error
	Clear() error
}

// Client is the single point through which every call to the college REST
// backend passes. It attaches the bearer token, decodes the standard
// {success, data, message} envelope and performs the refresh-then-retry
// flow on 401 responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
	log        zerolog.Logger

	// Serializes concurrent 401-triggered refreshes so the refresh endpoint
	// is called at most once per expired access token.
	refreshMu sync.Mutex

	// Called after a failed refresh has cleared the credentials.
	onSessionEnd func()

	// Called after every successful token refresh.
	onRefresh func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger used for request logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithSessionEndHandler registers a callback invoked when a token refresh
// fails and the session has been cleared.
func WithSessionEndHandler(fn func()) Option {
	return func(c *Client) {
		c.onSessionEnd = fn
	}
}

// WithRefreshObserver registers a callback invoked after each successful
// token refresh.
func WithRefreshObserver(fn func()) Option {
	return func(c *Client) {
		c.onRefresh = fn
	}
}

// New creates a backend client. creds may be nil for a purely public,
// unauthenticated client.
func New(baseURL string, creds Credentials, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("[backend.New] baseURL is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// retriedKey marks a request context as having already been through the
// refresh-then-retry flow, preventing refresh loops.
type retriedKey struct{}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func alreadyRetried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

// requestOptions control per-call behaviour of do.
type requestOptions struct {
	skipAuthRetry bool
	query         url.Values
}

type RequestOption func(*requestOptions)

// WithoutAuthRetry disables the refresh-then-retry flow for a call. Used by
// the credential endpoints themselves: a 401 from login or refresh is a
// final answer, not an expired access token.
func WithoutAuthRetry() RequestOption {
	return func(o *requestOptions) {
		o.skipAuthRetry = true
	}
}

// WithQuery appends query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		o.query = q
	}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues a request and decodes the enveloped response into out (which may
// be nil). A 401 on an authenticated call triggers a single serialized token
// refresh followed by one retry carrying the new access token. Every other
// failure propagates unchanged to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, options ...RequestOption) error {
	opts := requestOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	access := ""
	if c.creds != nil {
		access, _ = c.creds.Tokens()
	}

	resp, err := c.send(ctx, method, path, body, access, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !opts.skipAuthRetry && !alreadyRetried(ctx) && c.creds != nil {
		io.Copy(io.Discard, resp.Body)
		return c.retryAfterRefresh(ctx, method, path, body, out, access, opts)
	}

	return c.decode(resp, out)
}

// retryAfterRefresh performs the refresh-then-retry flow for a 401'd request.
// The original access token is passed so that concurrent 401s can detect a
// refresh already performed by another caller.
func (c *Client) retryAfterRefresh(ctx context.Context, method, path string, body, out interface{}, staleAccess string, opts requestOptions) error {
	if err := c.refreshOnce(ctx, staleAccess); err != nil {
		// Refresh failure ends the session; the caller still sees the
		// original 401.
		c.log.Warn().Err(err).Str("path", path).Msg("token refresh failed, session ended")
		if c.creds != nil {
			_ = c.creds.Clear()
		}
		if c.onSessionEnd != nil {
			c.onSessionEnd()
		}
		return &APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	}

	ctx = markRetried(ctx)
	access, _ := c.creds.Tokens()
	resp, err := c.send(ctx, method, path, body, access, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.decode(resp, out)
}

// refreshOnce exchanges the refresh token for a new token pair. Concurrent
// callers serialize here; whoever arrives after the pair has rotated away
// from staleAccess returns immediately without a second refresh call.
func (c *Client) refreshOnce(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refresh := c.creds.Tokens()
	if access != staleAccess && access != "" {
		return nil
	}
	if refresh == "" {
		return syserrors.ErrNoRefreshToken
	}

	pair, err := c.refreshToken(ctx, refresh)
	if err != nil {
		return syserrors.Wrapf(err, "[refreshOnce] %v", syserrors.ErrRefreshFailed)
	}
	if err := c.creds.SetTokens(pair.Token, pair.RefreshToken); err != nil {
		return syserrors.Wrapf(err, "[refreshOnce] failed to store rotated tokens")
	}
	if c.onRefresh != nil {
		c.onRefresh()
	}
	c.log.Debug().Msg("access token refreshed")
	return nil
}

// send performs a single HTTP attempt. Network failures are wrapped as
// ErrNetworkFailure; HTTP status handling is the caller's job.
func (c *Client) send(ctx context.Context, method, path string, body interface{}, access string, opts requestOptions) (*http.Response, error) {
	u := c.baseURL + path
	if len(opts.query) > 0 {
		u += "?" + opts.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[send] failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("[send] failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, syserrors.Wrapf(err, "[send] %s %s: %w", method, path, syserrors.ErrNetworkFailure)
	}
	return resp, nil
}

// decode reads the response envelope into out, turning non-2xx statuses and
// success=false envelopes into *APIError values.
func (c *Client) decode(resp *http.Response, out interface{}) error {
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return syserrors.Wrapf(err, "[decode] failed to read response body")
	}

	var env envelope
	if len(payload) > 0 {
		// A non-JSON body (proxy error page etc.) still maps onto a status
		// based APIError below.
		_ = json.Unmarshal(payload, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if len(payload) > 0 && !env.Success && env.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return syserrors.Wrapf(err, "[decode] failed to decode response data")
	}
	return nil
}
