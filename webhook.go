package hiveforge

import "context"

// WebhookClient targets a single webhook.
type WebhookClient struct {
	baseClient
}

// WebhookCollectionClient targets the account's webhook collection.
type WebhookCollectionClient struct {
	baseClient
}

// Get retrieves the webhook. Returns (nil, nil) when it does not exist.
func (w *WebhookClient) Get(ctx context.Context) (Record, error) {
	return w.getRecord(ctx, w.url(), nil)
}

// Update modifies the webhook's fields.
func (w *WebhookClient) Update(ctx context.Context, fields Record) (Record, error) {
	return w.putRecord(ctx, w.url(), fields)
}

// Delete removes the webhook.
func (w *WebhookClient) Delete(ctx context.Context) error {
	return w.delete(ctx, w.url())
}

// Dispatches lists the webhook's past dispatches.
func (w *WebhookClient) Dispatches(ctx context.Context, opts *ListOptions) (Record, error) {
	return w.list(ctx, w.url("dispatches"), opts)
}

// List enumerates the account's webhooks.
func (w *WebhookCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return w.list(ctx, w.url(), opts)
}

// Create registers a new webhook.
func (w *WebhookCollectionClient) Create(ctx context.Context, webhook Record) (Record, error) {
	return w.postRecord(ctx, w.url(), nil, webhook)
}
