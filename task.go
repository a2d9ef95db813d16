package hiveforge

import (
	"context"
	"time"
)

// TaskClient targets a single actor task, a stored actor configuration.
type TaskClient struct {
	baseClient
	client *Client
}

// TaskCollectionClient targets the account's actor task collection.
type TaskCollectionClient struct {
	baseClient
}

// Get retrieves the task. Returns (nil, nil) when it does not exist.
func (t *TaskClient) Get(ctx context.Context) (Record, error) {
	return t.getRecord(ctx, t.url(), nil)
}

// Update modifies the task's fields.
func (t *TaskClient) Update(ctx context.Context, fields Record) (Record, error) {
	return t.putRecord(ctx, t.url(), fields)
}

// Delete removes the task.
func (t *TaskClient) Delete(ctx context.Context) error {
	return t.delete(ctx, t.url())
}

// Start launches a run of the task. A non-nil input overrides the task's
// stored input.
func (t *TaskClient) Start(ctx context.Context, input any, opts *StartOptions) (Record, error) {
	return t.postRecord(ctx, t.url("runs"), opts.params(), input)
}

// Call starts a run of the task and waits for it to reach a terminal status.
func (t *TaskClient) Call(ctx context.Context, input any, opts *StartOptions, wait ...time.Duration) (Record, error) {
	run, err := t.Start(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	runID, _ := run["id"].(string)
	return t.client.Run(runID).WaitForFinish(ctx, wait...)
}

// List enumerates the account's tasks.
func (t *TaskCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return t.list(ctx, t.url(), opts)
}

// Create registers a new task.
func (t *TaskCollectionClient) Create(ctx context.Context, task Record) (Record, error) {
	return t.postRecord(ctx, t.url(), nil, task)
}
