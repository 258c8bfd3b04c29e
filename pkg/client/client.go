// Package client wraps the blog REST API.
//
// Every call goes through one request pipeline: attach the bearer token from
// durable storage, send, unwrap the {code, message, data} envelope, and on
// failure emit a user-facing notice (plus a redirect to login on 401) before
// returning a typed error. Notices and navigation are side effects only; the
// caller always gets the outcome through the returned error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/air846/personal-blog-system/pkg/domain"
	"github.com/air846/personal-blog-system/pkg/storage"
)

// Defaults for a local development server.
const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 10 * time.Second
)

const maxBodyBytes = 10 << 20 // 10 MB

// Client is the blog API client.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          storage.Storage
	notifier       Notifier
	navigator      Navigator
	onUnauthorized func()
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the client-wide request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStorage sets the durable storage the bearer token is read from.
func WithStorage(s storage.Storage) Option {
	return func(c *Client) { c.store = s }
}

// WithNotifier sets where failure notices are sent.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithNavigator sets the navigator used for the 401 redirect to login.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithOnUnauthorized registers fn to run after a 401 has cleared the stored
// token, so in-memory session state can follow.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		notifier:  discard{},
		navigator: discard{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API origin and prefix requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	requestID := uuid.NewString()
	log := c.logger.With("method", method, "path", path, "request_id", requestID)

	req, err := c.newRequest(ctx, method, path, query, body, requestID)
	if err != nil {
		log.Error("build request", "err", err)
		c.notify(LevelError, msgRequestConfig)
		return &RequestError{Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(ctx, log, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	log = log.With("status", resp.StatusCode, "duration", time.Since(start))
	if resp.StatusCode >= 400 {
		return c.statusFailure(log, resp)
	}
	return c.unwrap(log, resp.Body, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, requestID string) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", c.baseURL)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// transportFailure classifies a failure where no response arrived.
func (c *Client) transportFailure(ctx context.Context, log *slog.Logger, err error) error {
	if ctx.Err() != nil {
		// The caller gave up; there is nobody to show a notice to.
		log.Debug("request canceled", "err", err)
		return &NetworkError{Err: err, Canceled: true}
	}
	log.Warn("request failed without response", "err", err)
	c.notify(LevelError, msgNetwork)
	return &NetworkError{Err: err}
}

// statusFailure classifies a response with an HTTP error status.
func (c *Client) statusFailure(log *slog.Logger, resp *http.Response) error {
	var serverMessage string
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr == nil {
		var env domain.Envelope
		if json.Unmarshal(data, &env) == nil {
			serverMessage = env.Message
		}
	}

	log.Warn("request failed", "server_message", serverMessage)
	c.notify(LevelError, statusNotice(resp.StatusCode, serverMessage))
	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate(log)
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: serverMessage}
}

// unwrap validates the envelope and decodes its data field into out.
func (c *Client) unwrap(log *slog.Logger, body io.Reader, out any) error {
	var env domain.Envelope
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&env); err != nil {
		log.Error("decode envelope", "err", err)
		c.notify(LevelError, msgRequestFailed)
		return &APIError{Message: msgRequestFailed}
	}

	if !env.OK() {
		log.Warn("api error", "code", env.Code, "message", env.Message)
		c.notify(LevelError, envelopeNotice(env.Message))
		if unauthorizedCode(env.Code) {
			c.invalidate(log)
		}
		return &APIError{Code: env.Code, Message: env.Message}
	}

	log.Debug("request ok")
	if out == nil || !env.HasData() {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Error("decode data", "err", err)
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// invalidate drops the stored token and sends the user to the login view.
func (c *Client) invalidate(log *slog.Logger) {
	if c.store != nil {
		if err := c.store.Remove(storage.KeyToken); err != nil {
			log.Error("clear token", "err", err)
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	c.navigator.Navigate(RouteLogin)
}

func (c *Client) token() string {
	if c.store == nil {
		return ""
	}
	tok, _, err := c.store.Get(storage.KeyToken)
	if err != nil {
		c.logger.Warn("read token", "err", err)
		return ""
	}
	return tok
}

func (c *Client) notify(level Level, text string) {
	c.notifier.Notify(Notice{Level: level, Text: text})
}
