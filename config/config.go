// Package config loads and validates the SDK client configuration.
// Sources are merged with increasing priority: built-in defaults, an optional
// hiveforge.yaml file, and HIVEFORGE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultBaseURL is the public API endpoint of the Hiveforge platform.
	DefaultBaseURL = "https://api.hiveforge.dev"

	// DefaultPublicBaseURL is the endpoint used when building user-facing links.
	DefaultPublicBaseURL = "https://hiveforge.dev"

	// DefaultMaxRetries is the number of retries after the first failed attempt.
	DefaultMaxRetries = 8

	// DefaultMinRetryDelay is the base delay of the exponential backoff schedule.
	DefaultMinRetryDelay = 500 * time.Millisecond

	// DefaultTimeout is the overall per-request timeout.
	DefaultTimeout = 360 * time.Second

	// EnvPrefix is the prefix of all environment variables read by Load.
	EnvPrefix = "HIVEFORGE_"

	// DefaultConfigFile is the optional YAML configuration file name.
	DefaultConfigFile = "hiveforge.yaml"
)

// Config holds the immutable client configuration. It is created once at
// client construction and shared, never mutated, by every resource client.
type Config struct {
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	PublicBaseURL     string        `koanf:"public_base_url" validate:"required,url"`
	Token             string        `koanf:"token"`
	MaxRetries        int           `koanf:"max_retries" validate:"min=0"`
	MinRetryDelay     time.Duration `koanf:"min_retry_delay" validate:"min=0"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRequestsPerSec int           `koanf:"max_requests_per_sec" validate:"min=0"`

	// WorkflowKey and IsAtHome describe the execution environment when the SDK
	// runs inside the platform's own infrastructure. They are resolved once
	// here, never read from the process environment per request.
	WorkflowKey string `koanf:"workflow_key"`
	IsAtHome    bool   `koanf:"is_at_home"`

	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool   `koanf:"log_pretty"`
}

// Load builds a Config from defaults, the optional hiveforge.yaml file in the
// working directory, and HIVEFORGE_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// The YAML file is optional; a missing file is not an error.
	_ = k.Load(file.Provider(DefaultConfigFile), yaml.Parser())

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return finalize(k)
}

// LoadFromBytes builds a Config from defaults overlaid with the given YAML
// document. Environment variables are not consulted.
func LoadFromBytes(doc []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(doc), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse configuration document: %w", err)
	}

	return finalize(k)
}

// Default returns a Config with built-in defaults only.
func Default() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		PublicBaseURL: DefaultPublicBaseURL,
		MaxRetries:    DefaultMaxRetries,
		MinRetryDelay: DefaultMinRetryDelay,
		Timeout:       DefaultTimeout,
		LogLevel:      "info",
	}
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"base_url":             DefaultBaseURL,
		"public_base_url":      DefaultPublicBaseURL,
		"token":                "",
		"max_retries":          DefaultMaxRetries,
		"min_retry_delay":      DefaultMinRetryDelay.String(),
		"timeout":              DefaultTimeout.String(),
		"max_requests_per_sec": 0,
		"workflow_key":         "",
		"is_at_home":           false,
		"log_level":            "info",
		"log_pretty":           false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func finalize(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
