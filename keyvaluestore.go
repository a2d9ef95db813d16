package hiveforge

import (
	"context"

	"github.com/hiveforge/hiveforge-go/httpclient"
)

// KeyValueStoreClient targets a single key-value store.
type KeyValueStoreClient struct {
	baseClient
}

// KeyValueStoreCollectionClient targets the account's key-value store collection.
type KeyValueStoreCollectionClient struct {
	baseClient
}

// StoreRecord is one raw key-value store entry.
type StoreRecord struct {
	Key         string
	Value       []byte
	ContentType string
}

// Get retrieves the store. Returns (nil, nil) when it does not exist.
func (s *KeyValueStoreClient) Get(ctx context.Context) (Record, error) {
	return s.getRecord(ctx, s.url(), nil)
}

// Delete removes the store.
func (s *KeyValueStoreClient) Delete(ctx context.Context) error {
	return s.delete(ctx, s.url())
}

// GetRecord fetches one entry with its raw value and content type. Returns
// (nil, nil) when the key does not exist.
func (s *KeyValueStoreClient) GetRecord(ctx context.Context, key string) (*StoreRecord, error) {
	resp, err := s.transport.Get(ctx, &httpclient.Request{URL: s.url("records", key)})
	if err != nil {
		if httpclient.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &StoreRecord{
		Key:         key,
		Value:       resp.Body,
		ContentType: resp.Headers.Get("Content-Type"),
	}, nil
}

// SetRecord stores a raw value under the given key.
func (s *KeyValueStoreClient) SetRecord(ctx context.Context, key string, value []byte, contentType string) error {
	req := &httpclient.Request{URL: s.url("records", key), Body: value}
	if contentType != "" {
		req.Headers = map[string]string{"Content-Type": contentType}
	}
	_, err := s.transport.Put(ctx, req)
	return err
}

// DeleteRecord removes one entry.
func (s *KeyValueStoreClient) DeleteRecord(ctx context.Context, key string) error {
	return s.delete(ctx, s.url("records", key))
}

// List enumerates the account's key-value stores.
func (s *KeyValueStoreCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return s.list(ctx, s.url(), opts)
}

// GetOrCreate returns the named store, creating it when missing.
func (s *KeyValueStoreCollectionClient) GetOrCreate(ctx context.Context, name string) (Record, error) {
	return s.postRecord(ctx, s.url(), map[string]any{"name": name}, nil)
}
