package vendus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/redact"
)

const (
	// DefaultBaseURL is the Vendus REST API root.
	DefaultBaseURL = "https://www.vendus.pt/ws/v1.1"

	// DefaultTimeout bounds every upstream call.
	DefaultTimeout = 10 * time.Second
)

// Outcome labels recorded for calls that produced no HTTP status.
const (
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Recorder observes completed upstream calls.
type Recorder interface {
	ObserveRequest(resource, method, outcome string, elapsed time.Duration)
}

// Request describes one upstream call. Resource is relative to the base URL,
// for example "products/categories".
type Request struct {
	Method   string
	Resource string
	Query    url.Values
	Body     any
}

// Response is a completed upstream call. Body holds the decoded JSON, nil
// for an empty body, or {"raw": text} when the body is not valid JSON, in
// which case Malformed is set.
type Response struct {
	StatusCode int
	Body       any
	Raw        string
	Malformed  bool
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs authenticated calls against the Vendus API.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	recorder   Recorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRecorder registers a metrics recorder for every call.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient creates a Vendus API client.
//
// Parameters:
//   - cfg: upstream settings; an empty base URL or zero timeout falls back to the defaults
//   - logger: structured logger, required
//   - opts: optional HTTP client and metrics recorder
//
// A missing API key does not fail construction: every call then fails with
// a ConfigMissing error instead, so the server can start without credentials.
func NewClient(cfg config.VendusConfig, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for vendus.Client")
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		httpClient: http.DefaultClient,
		logger:     logger.With(slog.String("component", "vendus_client")),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Do performs one call and returns the response for any HTTP status.
//
// Errors:
//   - ConfigMissing when no API key is configured (no network call is made)
//   - UpstreamTimeout when the call exceeds the configured timeout
//   - UpstreamCallFailed (502) on any other transport failure
//   - the caller's context error, wrapped, when the caller cancels
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if !c.Configured() {
		return nil, domain.NewError(domain.KindConfigMissing, "Missing VENDUS_API_KEY")
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("vendus: encode %s %s body: %w", method, req.Resource, err)
		}
		body = bytes.NewReader(payload)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, method, c.endpoint(req), body)
	if err != nil {
		return nil, fmt.Errorf("vendus: build %s %s request: %w", method, req.Resource, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, callCtx, method, req.Resource, start, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportFailure(ctx, callCtx, method, req.Resource, start, err)
	}

	elapsed := time.Since(start)
	c.observe(req.Resource, method, strconv.Itoa(resp.StatusCode), elapsed)
	c.logger.DebugContext(ctx, "vendus request completed",
		slog.String("method", method),
		slog.String("resource", req.Resource),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", elapsed.Milliseconds()))

	text := string(raw)
	parsed, ok := parseBody(text)
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       parsed,
		Raw:        text,
		Malformed:  !ok,
	}, nil
}

// Fetch performs a call and turns a non-2xx status into an UpstreamCallFailed
// error with the given code, carrying the upstream status and body.
func (c *Client) Fetch(ctx context.Context, req Request, code, message string) (*Response, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.Failure(domain.KindUpstreamCallFailed, code, message)
	}
	return resp, nil
}

// Failure converts a non-2xx response into a domain error of the given kind.
// The message gets the upstream status appended.
func (r *Response) Failure(kind domain.Kind, code, message string) *domain.Error {
	err := domain.NewUpstreamError(kind, r.StatusCode,
		fmt.Sprintf("%s (%d)", message, r.StatusCode), r.Body)
	if code != "" {
		err.WithCode(code)
	}
	return err
}

func (c *Client) endpoint(req Request) string {
	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Resource, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}
	return endpoint
}

func (c *Client) transportFailure(
	ctx, callCtx context.Context,
	method, resource string,
	start time.Time,
	err error,
) error {
	elapsed := time.Since(start)
	log := c.logger.With(
		slog.String("method", method),
		slog.String("resource", resource),
		slog.Int64("duration_ms", elapsed.Milliseconds()))

	switch {
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		c.observe(resource, method, OutcomeTimeout, elapsed)
		log.WarnContext(ctx, "vendus request timed out", slog.Duration("timeout", c.timeout))
		return domain.NewError(domain.KindUpstreamTimeout, "Vendus request timeout").WithCause(err)
	case ctx.Err() != nil:
		c.observe(resource, method, OutcomeCanceled, elapsed)
		log.DebugContext(ctx, "vendus request canceled by caller")
		return fmt.Errorf("vendus: %s %s: %w", method, resource, ctx.Err())
	default:
		c.observe(resource, method, OutcomeError, elapsed)
		log.ErrorContext(ctx, "vendus request failed", slog.String("error", redact.Error(err)))
		return domain.NewError(domain.KindUpstreamCallFailed, "Vendus request failed").WithCause(err)
	}
}

func (c *Client) observe(resource, method, outcome string, elapsed time.Duration) {
	if c.recorder != nil {
		c.recorder.ObserveRequest(resource, method, outcome, elapsed)
	}
}
