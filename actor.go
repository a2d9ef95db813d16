package hiveforge

import (
	"context"
	"time"
)

// ActorClient targets a single actor.
type ActorClient struct {
	baseClient
	client *Client
}

// ActorCollectionClient targets the account's actor collection.
type ActorCollectionClient struct {
	baseClient
}

// StartOptions tune how an actor run is started.
type StartOptions struct {
	// Build selects the build to run; empty means the actor's default build.
	Build string
	// MemoryMbytes overrides the run's memory limit.
	MemoryMbytes int
	// TimeoutSecs overrides the run's timeout.
	TimeoutSecs int
}

func (o *StartOptions) params() map[string]any {
	if o == nil {
		return nil
	}
	params := map[string]any{}
	if o.Build != "" {
		params["build"] = o.Build
	}
	if o.MemoryMbytes > 0 {
		params["memory"] = o.MemoryMbytes
	}
	if o.TimeoutSecs > 0 {
		params["timeout"] = o.TimeoutSecs
	}
	return params
}

// Get retrieves the actor. Returns (nil, nil) when it does not exist.
func (a *ActorClient) Get(ctx context.Context) (Record, error) {
	return a.getRecord(ctx, a.url(), nil)
}

// Update modifies the actor's fields.
func (a *ActorClient) Update(ctx context.Context, fields Record) (Record, error) {
	return a.putRecord(ctx, a.url(), fields)
}

// Delete removes the actor.
func (a *ActorClient) Delete(ctx context.Context) error {
	return a.delete(ctx, a.url())
}

// Start launches a run of the actor with the given input and returns the run
// object without waiting for it to finish.
func (a *ActorClient) Start(ctx context.Context, input any, opts *StartOptions) (Record, error) {
	return a.postRecord(ctx, a.url("runs"), opts.params(), input)
}

// Call starts a run and waits for it to reach a terminal status. An absent
// wait argument waits indefinitely.
func (a *ActorClient) Call(ctx context.Context, input any, opts *StartOptions, wait ...time.Duration) (Record, error) {
	run, err := a.Start(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	runID, _ := run["id"].(string)
	return a.client.Run(runID).WaitForFinish(ctx, wait...)
}

// LastRun retrieves the actor's most recent run, optionally filtered by
// status. Returns (nil, nil) when the actor has no runs.
func (a *ActorClient) LastRun(ctx context.Context, status JobStatus) (Record, error) {
	var params map[string]any
	if status != "" {
		params = map[string]any{"status": string(status)}
	}
	return a.getRecord(ctx, a.url("runs", "last"), params)
}

// List enumerates the account's actors.
func (a *ActorCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return a.list(ctx, a.url(), opts)
}

// Create registers a new actor.
func (a *ActorCollectionClient) Create(ctx context.Context, actor Record) (Record, error) {
	return a.postRecord(ctx, a.url(), nil, actor)
}
