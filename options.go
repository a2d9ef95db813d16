package hiveforge

import (
	"time"

	"github.com/hiveforge/hiveforge-go/config"
	"github.com/hiveforge/hiveforge-go/httpclient"
	"github.com/hiveforge/hiveforge-go/logger"
)

// Option configures a Client during construction.
type Option func(*clientOptions)

type clientOptions struct {
	cfg       *config.Config
	overrides []func(*config.Config)
	logger    logger.Logger
	transport httpclient.Client
}

// WithConfig supplies a fully resolved configuration, skipping the default
// file/environment lookup.
func WithConfig(cfg *config.Config) Option {
	return func(o *clientOptions) { o.cfg = cfg }
}

// WithToken sets the API token used for bearer authentication.
func WithToken(token string) Option {
	return override(func(cfg *config.Config) { cfg.Token = token })
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return override(func(cfg *config.Config) { cfg.BaseURL = baseURL })
}

// WithMaxRetries sets the number of retries after a failed first attempt.
func WithMaxRetries(maxRetries int) Option {
	return override(func(cfg *config.Config) { cfg.MaxRetries = maxRetries })
}

// WithMinRetryDelay sets the base delay of the backoff schedule.
func WithMinRetryDelay(delay time.Duration) Option {
	return override(func(cfg *config.Config) { cfg.MinRetryDelay = delay })
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return override(func(cfg *config.Config) { cfg.Timeout = timeout })
}

// WithLogger replaces the default zerolog-backed logger.
func WithLogger(log logger.Logger) Option {
	return func(o *clientOptions) { o.logger = log }
}

// WithTransport replaces the HTTP transport. Intended for tests.
func WithTransport(transport httpclient.Client) Option {
	return func(o *clientOptions) { o.transport = transport }
}

func override(fn func(*config.Config)) Option {
	return func(o *clientOptions) { o.overrides = append(o.overrides, fn) }
}
