// Package gateway is the single funnel for calls to the clinic backend. It
// attaches the session credentials to every request and normalizes failures
// into *Error values.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfman30/dental-clinic-client/internal/observability/metrics"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "http://localhost:5000"
	defaultUserAgent = "dental-clinic-client/0.1"
)

// Method is the lowercase verb callers pass to Request.
type Method string

const (
	Get    Method = "get"
	Post   Method = "post"
	Put    Method = "put"
	Delete Method = "delete"
)

// Valid reports whether m is one of the four supported verbs.
func (m Method) Valid() bool {
	switch m {
	case Get, Post, Put, Delete:
		return true
	}
	return false
}

// HTTP returns the wire form of the method.
func (m Method) HTTP() string {
	return strings.ToUpper(string(m))
}

// Requester is what resource wrappers need from the gateway.
type Requester interface {
	Request(ctx context.Context, method Method, path string, body any) (json.RawMessage, error)
	URL(path string) string
}

// Client issues requests against the clinic backend. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	base       *url.URL
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.GatewayMetrics
	tracer     trace.Tracer
	limiter    *rate.Limiter
	userAgent  string

	jar   *sessionJar
	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient uses hc for transport. The client is copied so the session
// jar never leaks into the caller's instance.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			clone := *hc
			c.httpClient = &clone
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.GatewayMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithRateLimit throttles outbound calls to rps with the given burst. A
// non-positive rps leaves calls unthrottled.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithSession seeds the client with previously persisted credentials.
func WithSession(s Session) Option {
	return func(c *Client) { c.SetSession(s) }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// New constructs a Client for baseURL, falling back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		base = &url.URL{Scheme: "http", Host: "localhost:5000"}
	}
	c := &Client{
		baseURL:    baseURL,
		base:       base,
		httpClient: &http.Client{},
		logger:     logging.Default(),
		tracer:     otel.Tracer("clinic.internal.gateway"),
		userAgent:  defaultUserAgent,
		jar:        &sessionJar{jar: newJar(), root: rootPath(base)},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Jar = c.jar
	return c
}

func newJar() *cookiejar.Jar {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

func rootPath(base *url.URL) string {
	if p := strings.TrimRight(base.Path, "/"); p != "" {
		return p
	}
	return "/"
}

// sessionJar lets the whole cookie set be swapped while requests are in flight.
// Cookies set without a Path are scoped to root, the base URL's path, so a
// session issued by /v1/auth/login is sent to every /v1 endpoint.
type sessionJar struct {
	mu   sync.RWMutex
	jar  *cookiejar.Jar
	root string
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	scoped := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Path == "" {
			cp := *c
			cp.Path = j.root
			c = &cp
		}
		scoped = append(scoped, c)
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.jar.SetCookies(u, scoped)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

func (j *sessionJar) reset(u *url.URL, cookies []*http.Cookie) {
	jar := newJar()
	jar.SetCookies(u, cookies)
	j.mu.Lock()
	j.jar = jar
	j.mu.Unlock()
}

// BaseURL returns the backend root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the absolute backend URL for path.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Session returns the credentials currently attached to calls.
func (c *Client) Session() Session {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	return sessionFromCookies(c.jar.Cookies(c.base), token)
}

// SetSession replaces the attached credentials.
func (c *Client) SetSession(s Session) {
	c.jar.reset(c.base, s.httpCookies())
	c.mu.Lock()
	c.token = s.Token
	c.mu.Unlock()
}

// ClearSession drops every credential.
func (c *Client) ClearSession() {
	c.SetSession(Session{})
}

// Request issues method against path with an optional JSON body and returns
// the response body unmodified. Any failure is logged once and returned as
// *Error.
func (c *Client) Request(ctx context.Context, method Method, path string, body any) (json.RawMessage, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	ctx, span := c.tracer.Start(ctx, "gateway.request", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method.HTTP()),
		attribute.String("clinic.path", path),
	)

	start := time.Now()
	data, err := c.do(ctx, method, path, body)
	outcome := "ok"
	if err != nil {
		var gwErr *Error
		if errors.As(err, &gwErr) {
			outcome = gwErr.Kind.String()
			span.SetAttributes(attribute.Int("http.status_code", gwErr.Status))
		} else {
			outcome = "client"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logFailure(method, path, err)
	}
	c.metrics.ObserveRequest(string(method), outcome, time.Since(start).Seconds())
	return data, err
}

func (c *Client) do(ctx context.Context, method Method, path string, body any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method.HTTP(), c.URL(path), bodyReader)
	if err != nil {
		return nil, transportError(method, path, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(method, path, err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, transportError(method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(method, path, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalizeResponse(method, path, resp.StatusCode, respBody)
	}
	return json.RawMessage(respBody), nil
}

func (c *Client) logFailure(method Method, path string, err error) {
	attrs := []any{"method", string(method), "path", path, "error", err.Error()}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		attrs = append(attrs, "kind", gwErr.Kind.String(), "status", gwErr.Status)
		if gwErr.Err != nil {
			attrs = append(attrs, "cause", gwErr.Err.Error())
		}
	}
	c.logger.Error("api request failed", attrs...)
}

// Do issues a request through r and decodes the response into T. An empty
// 2xx body yields the zero value.
func Do[T any](ctx context.Context, r Requester, method Method, path string, body any) (T, error) {
	var out T
	data, err := r.Request(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	return out, nil
}
