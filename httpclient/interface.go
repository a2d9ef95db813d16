// Package httpclient implements the resilient HTTP transport used by every
// resource client of the SDK: request execution with retry, jittered
// exponential backoff, per-attempt timeout escalation and error
// classification.
package httpclient

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/hiveforge/hiveforge-go/trace"
)

// HeaderXRequestID is the header name used for request correlation
const HeaderXRequestID = trace.HeaderXRequestID

const (
	// DefaultTimeout is the default overall request timeout duration
	DefaultTimeout = 360 * time.Second

	// DefaultMaxRetries is the default maximum number of retries for failed requests
	DefaultMaxRetries = 8

	// DefaultMinRetryDelay is the default base delay of the backoff schedule
	DefaultMinRetryDelay = 500 * time.Millisecond

	// DefaultBackoffFactor is the default exponential backoff multiplier
	DefaultBackoffFactor = 2.0

	// DefaultRandomFactor is the default proportional jitter applied to backoff delays
	DefaultRandomFactor = 1.0
)

// Client defines the transport interface consumed by resource clients.
// A single logical call may span multiple physical attempts; the transport
// is safe for concurrent use from multiple goroutines.
type Client interface {
	Get(ctx context.Context, req *Request) (*Response, error)
	Post(ctx context.Context, req *Request) (*Response, error)
	Put(ctx context.Context, req *Request) (*Response, error)
	Patch(ctx context.Context, req *Request) (*Response, error)
	Delete(ctx context.Context, req *Request) (*Response, error)
	Do(ctx context.Context, method string, req *Request) (*Response, error)
	Stats() *Statistics
}

// Request represents one logical API call. URL may be absolute or a path
// resolved against the configured base URL. At most one of Body and JSON may
// be set.
type Request struct {
	URL     string
	Headers map[string]string
	Params  map[string]any
	Body    []byte
	JSON    any
	// Timeout bounds the first attempt; later attempts escalate it
	// exponentially up to the overall client timeout. Zero means the client
	// timeout applies to every attempt.
	Timeout time.Duration
}

// Response represents an HTTP response produced by a successful attempt.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    nethttp.Header
	// Attempt is the 1-based number of the physical attempt that produced
	// this response.
	Attempt int
}

// Config holds the transport configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// MaxRetries counts retries after the first attempt. Zero means
	// DefaultMaxRetries; a negative value disables retrying.
	MaxRetries    int
	MinRetryDelay time.Duration
	// BackoffFactor is clamped to [1, 10]; RandomFactor to [0, 1].
	BackoffFactor float64
	RandomFactor  float64
	// MaxRequestsPerSec throttles physical attempts client-side; zero
	// disables the limiter.
	MaxRequestsPerSec int
	DefaultHeaders    map[string]string
	// LogPayloads enables debug-level logging of headers and body payloads
	LogPayloads bool
	// MaxPayloadLogBytes caps the number of body bytes logged when LogPayloads is enabled
	MaxPayloadLogBytes int
}
