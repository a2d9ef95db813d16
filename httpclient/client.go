package httpclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net"
	nethttp "net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hiveforge/hiveforge-go/logger"
	"github.com/hiveforge/hiveforge-go/trace"
)

// client implements the Client interface
type client struct {
	httpClient *nethttp.Client
	logger     logger.Logger
	config     *Config
	limiter    *rate.Limiter
	stats      *Statistics
	policy     *backoffPolicy
}

// NewClient creates a new transport from the given configuration. A nil
// logger disables transport logging.
func NewClient(cfg *Config, log logger.Logger) Client {
	if cfg == nil {
		cfg = &Config{}
	}
	// Copy before defaulting so the caller's value is never written to.
	cfgCopy := *cfg
	cfg = &cfgCopy
	applyDefaults(cfg)
	if log == nil {
		log = logger.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.MaxRequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxRequestsPerSec), cfg.MaxRequestsPerSec)
	}

	return &client{
		// The retry loop owns per-attempt deadlines, so the pooled
		// net/http client carries no timeout of its own.
		httpClient: &nethttp.Client{},
		logger:     log,
		config:     cfg,
		limiter:    limiter,
		stats:      &Statistics{},
		policy: &backoffPolicy{
			maxRetries:   cfg.MaxRetries,
			base:         cfg.MinRetryDelay,
			factor:       cfg.BackoffFactor,
			randomFactor: cfg.RandomFactor,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MinRetryDelay <= 0 {
		cfg.MinRetryDelay = DefaultMinRetryDelay
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	} else if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffFactor == 0 {
		cfg.BackoffFactor = DefaultBackoffFactor
	}
	if cfg.RandomFactor == 0 {
		cfg.RandomFactor = DefaultRandomFactor
	}
	if cfg.MaxPayloadLogBytes <= 0 {
		cfg.MaxPayloadLogBytes = 2048
	}
}

// Stats returns the counters shared by all calls on this transport.
func (c *client) Stats() *Statistics {
	return c.stats
}

// Get performs a GET request
func (c *client) Get(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodGet, req)
}

// Post performs a POST request
func (c *client) Post(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPost, req)
}

// Put performs a PUT request
func (c *client) Put(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPut, req)
}

// Patch performs a PATCH request
func (c *client) Patch(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPatch, req)
}

// Delete performs a DELETE request
func (c *client) Delete(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodDelete, req)
}

// Do executes one logical API call with retry, backoff and per-attempt
// timeout escalation. Input validation and body encoding happen before any
// network I/O; a validation failure never issues a request.
func (c *client) Do(ctx context.Context, method string, req *Request) (*Response, error) {
	if req == nil {
		return nil, NewValidationError("request cannot be nil", "request")
	}
	if req.URL == "" {
		return nil, NewValidationError("URL cannot be empty", "url")
	}

	callURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}
	body, payload, contentType, err := encodeRequestBody(req)
	if err != nil {
		return nil, err
	}

	c.stats.addCall()
	requestID := trace.EnsureRequestID(ctx)

	var resp *Response
	err = retryWithExpBackoff(ctx, c.policy, func(ctx context.Context, attempt int) (Outcome, error) {
		if c.limiter != nil {
			if waitErr := c.limiter.Wait(ctx); waitErr != nil {
				return Stop, NewNetworkError("request rate limiter interrupted", waitErr)
			}
		}

		c.stats.addRequest()

		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout(req.Timeout, attempt))
		defer cancel()

		httpReq, buildErr := c.buildRequest(attemptCtx, method, callURL, body, contentType, req.Headers, requestID)
		if buildErr != nil {
			return Stop, buildErr
		}

		c.logRequest(method, callURL, attempt, payload)

		httpResp, doErr := c.httpClient.Do(httpReq)
		if doErr != nil {
			if ctx.Err() != nil {
				// The caller's context ended; this is a cancellation of
				// the whole call, not a retryable attempt failure.
				return Stop, NewNetworkError("request canceled", ctx.Err())
			}
			if isTimeout(doErr) {
				return Retry, NewTimeoutError("request timed out", doErr)
			}
			return Retry, NewNetworkError("request execution failed", doErr)
		}
		defer httpResp.Body.Close()

		// Read the body fully even on failure so the pooled connection
		// stays reusable.
		respBody, readErr := io.ReadAll(httpResp.Body)
		if readErr != nil {
			return Retry, NewNetworkError("failed to read response body", readErr)
		}

		if IsSuccessStatus(httpResp.StatusCode) {
			// A JSON response that does not parse arrived garbled or
			// truncated somewhere along the way; the next attempt may
			// receive it intact.
			if isJSONContentType(httpResp.Header.Get("Content-Type")) && len(respBody) > 0 && !json.Valid(respBody) {
				return Retry, NewNetworkError("response body is not valid JSON", nil)
			}
			resp = &Response{
				StatusCode: httpResp.StatusCode,
				Body:       respBody,
				Headers:    httpResp.Header,
				Attempt:    attempt,
			}
			return Success, nil
		}

		apiErr := NewAPIError(method, httpResp.StatusCode, attempt, respBody)
		if httpResp.StatusCode == 429 {
			_ = c.stats.AddRateLimitError(attempt)
		}
		if isRetryableStatus(httpResp.StatusCode) {
			return Retry, apiErr
		}
		return Stop, apiErr
	})
	if err != nil {
		c.logError(method, callURL, err)
		return nil, err
	}

	c.logResponse(method, callURL, resp)
	return resp, nil
}

// attemptTimeout computes the deadline of one attempt:
// min(clientTimeout, requestTimeout * backoffFactor^(attempt-1)).
// Without a per-request timeout the client timeout bounds every attempt.
func (c *client) attemptTimeout(requested time.Duration, attempt int) time.Duration {
	clientTimeout := c.config.Timeout
	if requested <= 0 || requested >= clientTimeout {
		return clientTimeout
	}

	factor := math.Min(math.Max(c.config.BackoffFactor, 1), 10)
	escalated := time.Duration(float64(requested) * math.Pow(factor, float64(attempt-1)))
	if escalated >= clientTimeout || escalated <= 0 {
		return clientTimeout
	}
	return escalated
}

// buildURL resolves the request URL against the configured base URL and
// appends normalized query parameters.
func (c *client) buildURL(req *Request) (string, error) {
	callURL := req.URL
	if !strings.Contains(callURL, "://") {
		callURL = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.URL, "/")
	}

	if len(req.Params) == 0 {
		return callURL, nil
	}
	values, err := NormalizeParams(req.Params)
	if err != nil {
		return "", err
	}
	encoded := values.Encode()
	if encoded == "" {
		return callURL, nil
	}
	separator := "?"
	if strings.Contains(callURL, "?") {
		separator = "&"
	}
	return callURL + separator + encoded, nil
}

// encodeRequestBody serializes and compresses the request payload. Exactly
// one of Body and JSON may be set. The uncompressed payload is returned
// alongside the wire body for logging.
func encodeRequestBody(req *Request) (body, payload []byte, contentType string, err error) {
	if req.Body != nil && req.JSON != nil {
		return nil, nil, "", NewValidationError("only one of Body and JSON may be provided", "body")
	}

	payload = req.Body
	if req.JSON != nil {
		payload, err = json.Marshal(req.JSON)
		if err != nil {
			// Unsupported values (non-finite numbers, channels, cycles)
			// are caller mistakes, not transport failures.
			return nil, nil, "", NewValidationError(fmt.Sprintf("cannot serialize JSON body: %v", err), "json")
		}
		contentType = "application/json"
	}
	if payload == nil {
		return nil, nil, "", nil
	}

	compressed, err := gzipBytes(payload)
	if err != nil {
		return nil, nil, "", NewValidationError(fmt.Sprintf("cannot compress request body: %v", err), "body")
	}
	return compressed, payload, contentType, nil
}

func gzipBytes(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildRequest constructs an *http.Request with default and per-call headers.
func (c *client) buildRequest(ctx context.Context, method, callURL string, body []byte, contentType string, headers map[string]string, requestID string) (*nethttp.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, callURL, reader)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("cannot create HTTP request: %v", err), "url")
	}

	for key, value := range c.config.DefaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	httpReq.Header.Set(HeaderXRequestID, requestID)
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json, */*")
	}
	if body != nil {
		httpReq.Header.Set("Content-Encoding", "gzip")
		if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
			httpReq.Header.Set("Content-Type", contentType)
		}
	}
	return httpReq, nil
}

// isJSONContentType reports whether the media type declares a JSON body.
func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// logRequest logs the outgoing attempt
func (c *client) logRequest(method, callURL string, attempt int, body []byte) {
	logEvent := c.logger.Debug().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", callURL).
		Int("attempt", attempt)

	if c.config.LogPayloads && len(body) > 0 {
		logEvent = logEvent.Bytes("body", truncate(body, c.config.MaxPayloadLogBytes))
	}

	logEvent.Msg("API client request")
}

// logResponse logs the successful response
func (c *client) logResponse(method, callURL string, resp *Response) {
	logEvent := c.logger.Debug().
		Str("direction", "inbound").
		Str("method", method).
		Str("url", callURL).
		Int("status", resp.StatusCode).
		Int("attempt", resp.Attempt)

	if c.config.LogPayloads && len(resp.Body) > 0 {
		logEvent = logEvent.Bytes("body", truncate(resp.Body, c.config.MaxPayloadLogBytes))
	}

	logEvent.Msg("API client response")
}

func (c *client) logError(method, callURL string, err error) {
	c.logger.Warn().
		Str("method", method).
		Str("url", callURL).
		Err(err).
		Msg("API client call failed")
}

func truncate(b []byte, limit int) []byte {
	if len(b) <= limit {
		return b
	}
	return b[:limit]
}
