package hiveforge

import "context"

// RequestQueueClient targets a single request queue.
type RequestQueueClient struct {
	baseClient
}

// RequestQueueCollectionClient targets the account's request queue collection.
type RequestQueueCollectionClient struct {
	baseClient
}

// Get retrieves the queue. Returns (nil, nil) when it does not exist.
func (q *RequestQueueClient) Get(ctx context.Context) (Record, error) {
	return q.getRecord(ctx, q.url(), nil)
}

// Delete removes the queue.
func (q *RequestQueueClient) Delete(ctx context.Context) error {
	return q.delete(ctx, q.url())
}

// AddRequest enqueues a crawling request. With forefront set, the request
// goes to the head of the queue.
func (q *RequestQueueClient) AddRequest(ctx context.Context, request Record, forefront bool) (Record, error) {
	var params map[string]any
	if forefront {
		params = map[string]any{"forefront": true}
	}
	return q.postRecord(ctx, q.url("requests"), params, request)
}

// GetRequest fetches one enqueued request by ID. Returns (nil, nil) when it
// does not exist.
func (q *RequestQueueClient) GetRequest(ctx context.Context, requestID string) (Record, error) {
	return q.getRecord(ctx, q.url("requests", requestID), nil)
}

// DeleteRequest removes one enqueued request.
func (q *RequestQueueClient) DeleteRequest(ctx context.Context, requestID string) error {
	return q.delete(ctx, q.url("requests", requestID))
}

// List enumerates the account's request queues.
func (q *RequestQueueCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return q.list(ctx, q.url(), opts)
}

// GetOrCreate returns the named queue, creating it when missing.
func (q *RequestQueueCollectionClient) GetOrCreate(ctx context.Context, name string) (Record, error) {
	return q.postRecord(ctx, q.url(), map[string]any{"name": name}, nil)
}
