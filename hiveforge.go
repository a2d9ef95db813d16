// Package hiveforge is the Go client SDK for the Hiveforge actor platform's
// REST API. It offers typed resource clients (actors, runs, builds, datasets,
// key-value stores, request queues, webhooks, schedules, tasks) on top of a
// resilient HTTP transport with automatic retry, jittered exponential backoff
// and job-completion polling.
//
// A client is safe for concurrent use from multiple goroutines; all resource
// clients created from it share one connection pool and one set of transport
// statistics.
package hiveforge

import (
	"github.com/hiveforge/hiveforge-go/config"
	"github.com/hiveforge/hiveforge-go/httpclient"
	"github.com/hiveforge/hiveforge-go/logger"
)

// Client is the entry point of the SDK. It carries the immutable
// configuration and the shared transport all resource clients use.
type Client struct {
	cfg       *config.Config
	log       logger.Logger
	transport httpclient.Client
}

// NewClient creates a Client. Without options the configuration is resolved
// from defaults, an optional hiveforge.yaml file and HIVEFORGE_* environment
// variables.
func NewClient(opts ...Option) (*Client, error) {
	settings := &clientOptions{}
	for _, opt := range opts {
		opt(settings)
	}

	cfg := settings.cfg
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		// Copy so option overrides never mutate the caller's value.
		cfgCopy := *cfg
		cfg = &cfgCopy
	}
	for _, override := range settings.overrides {
		override(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log := settings.logger
	if log == nil {
		log = logger.New(cfg.LogLevel, cfg.LogPretty)
	}

	transport := settings.transport
	if transport == nil {
		transport = httpclient.NewClient(&httpclient.Config{
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			MaxRetries:        cfg.MaxRetries,
			MinRetryDelay:     cfg.MinRetryDelay,
			MaxRequestsPerSec: cfg.MaxRequestsPerSec,
			DefaultHeaders:    defaultHeaders(cfg),
		}, log)
	}

	return &Client{cfg: cfg, log: log, transport: transport}, nil
}

// defaultHeaders builds the header set sent with every request. Environment
// metadata (workflow key, in-platform flag) comes from the configuration
// resolved at construction, never from ad hoc environment lookups.
func defaultHeaders(cfg *config.Config) map[string]string {
	headers := map[string]string{
		"User-Agent": userAgent(cfg.IsAtHome),
	}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}
	if cfg.WorkflowKey != "" {
		headers["X-Hiveforge-Workflow-Key"] = cfg.WorkflowKey
	}
	return headers
}

// Config returns the client configuration. Shared by reference and never
// mutated after construction.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Stats returns the transport counters shared by all resource clients.
func (c *Client) Stats() *httpclient.Statistics {
	return c.transport.Stats()
}

// Actor returns a client for a single actor.
func (c *Client) Actor(id string) *ActorClient {
	return &ActorClient{baseClient: c.resource("acts", id), client: c}
}

// Actors returns a client for the actor collection.
func (c *Client) Actors() *ActorCollectionClient {
	return &ActorCollectionClient{baseClient: c.resource("acts", "")}
}

// Run returns a client for a single actor run.
func (c *Client) Run(id string) *RunClient {
	return &RunClient{baseClient: c.resource("actor-runs", id), client: c}
}

// Build returns a client for a single actor build.
func (c *Client) Build(id string) *BuildClient {
	return &BuildClient{baseClient: c.resource("actor-builds", id)}
}

// Dataset returns a client for a single dataset.
func (c *Client) Dataset(id string) *DatasetClient {
	return &DatasetClient{baseClient: c.resource("datasets", id)}
}

// Datasets returns a client for the dataset collection.
func (c *Client) Datasets() *DatasetCollectionClient {
	return &DatasetCollectionClient{baseClient: c.resource("datasets", "")}
}

// KeyValueStore returns a client for a single key-value store.
func (c *Client) KeyValueStore(id string) *KeyValueStoreClient {
	return &KeyValueStoreClient{baseClient: c.resource("key-value-stores", id)}
}

// KeyValueStores returns a client for the key-value store collection.
func (c *Client) KeyValueStores() *KeyValueStoreCollectionClient {
	return &KeyValueStoreCollectionClient{baseClient: c.resource("key-value-stores", "")}
}

// RequestQueue returns a client for a single request queue.
func (c *Client) RequestQueue(id string) *RequestQueueClient {
	return &RequestQueueClient{baseClient: c.resource("request-queues", id)}
}

// RequestQueues returns a client for the request queue collection.
func (c *Client) RequestQueues() *RequestQueueCollectionClient {
	return &RequestQueueCollectionClient{baseClient: c.resource("request-queues", "")}
}

// Webhook returns a client for a single webhook.
func (c *Client) Webhook(id string) *WebhookClient {
	return &WebhookClient{baseClient: c.resource("webhooks", id)}
}

// Webhooks returns a client for the webhook collection.
func (c *Client) Webhooks() *WebhookCollectionClient {
	return &WebhookCollectionClient{baseClient: c.resource("webhooks", "")}
}

// Schedule returns a client for a single schedule.
func (c *Client) Schedule(id string) *ScheduleClient {
	return &ScheduleClient{baseClient: c.resource("schedules", id)}
}

// Schedules returns a client for the schedule collection.
func (c *Client) Schedules() *ScheduleCollectionClient {
	return &ScheduleCollectionClient{baseClient: c.resource("schedules", "")}
}

// Task returns a client for a single actor task.
func (c *Client) Task(id string) *TaskClient {
	return &TaskClient{baseClient: c.resource("actor-tasks", id), client: c}
}

// Tasks returns a client for the actor task collection.
func (c *Client) Tasks() *TaskCollectionClient {
	return &TaskCollectionClient{baseClient: c.resource("actor-tasks", "")}
}
