package hiveforge

import (
	"context"
	"time"
)

// RunClient targets a single actor run.
type RunClient struct {
	baseClient
	client *Client
}

// Get retrieves the run. Returns (nil, nil) when it does not exist.
func (r *RunClient) Get(ctx context.Context) (Record, error) {
	return r.getRecord(ctx, r.url(), nil)
}

// Abort requests the run to stop. With gracefully set, the run gets a chance
// to persist its state before shutdown.
func (r *RunClient) Abort(ctx context.Context, gracefully bool) (Record, error) {
	var params map[string]any
	if gracefully {
		params = map[string]any{"gracefully": true}
	}
	return r.postRecord(ctx, r.url("abort"), params, nil)
}

// Metamorph transforms the run into a run of another actor, reusing the
// current run's default storages.
func (r *RunClient) Metamorph(ctx context.Context, targetActorID string, input any) (Record, error) {
	return r.postRecord(ctx, r.url("metamorph"), map[string]any{"targetActorId": targetActorID}, input)
}

// WaitForFinish polls the run until it reaches a terminal status or the
// optional wall-clock budget elapses. An absent wait argument waits
// indefinitely; a run that never becomes visible yields (nil, nil).
func (r *RunClient) WaitForFinish(ctx context.Context, wait ...time.Duration) (Record, error) {
	return r.waitForFinish(ctx, waitBudget(wait))
}

// Dataset returns a client for the run's default dataset.
func (r *RunClient) Dataset(ctx context.Context) (*DatasetClient, error) {
	run, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	id, _ := run["defaultDatasetId"].(string)
	return r.client.Dataset(id), nil
}

// KeyValueStore returns a client for the run's default key-value store.
func (r *RunClient) KeyValueStore(ctx context.Context) (*KeyValueStoreClient, error) {
	run, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	id, _ := run["defaultKeyValueStoreId"].(string)
	return r.client.KeyValueStore(id), nil
}
