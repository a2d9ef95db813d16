package hiveforge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hiveforge/hiveforge-go/httpclient"
)

// DatasetClient targets a single dataset.
type DatasetClient struct {
	baseClient
}

// DatasetCollectionClient targets the account's dataset collection.
type DatasetCollectionClient struct {
	baseClient
}

// ListItemsOptions control dataset item pagination and shaping.
type ListItemsOptions struct {
	Limit  int
	Offset int
	Desc   bool
	// Fields restricts the returned item attributes.
	Fields []string
	Clean  bool
}

func (o *ListItemsOptions) params() map[string]any {
	if o == nil {
		return nil
	}
	params := map[string]any{}
	if o.Limit > 0 {
		params["limit"] = o.Limit
	}
	if o.Offset > 0 {
		params["offset"] = o.Offset
	}
	if o.Desc {
		params["desc"] = true
	}
	if len(o.Fields) > 0 {
		params["fields"] = o.Fields
	}
	if o.Clean {
		params["clean"] = true
	}
	return params
}

// Get retrieves the dataset. Returns (nil, nil) when it does not exist.
func (d *DatasetClient) Get(ctx context.Context) (Record, error) {
	return d.getRecord(ctx, d.url(), nil)
}

// Delete removes the dataset.
func (d *DatasetClient) Delete(ctx context.Context) error {
	return d.delete(ctx, d.url())
}

// ListItems fetches a page of dataset items.
func (d *DatasetClient) ListItems(ctx context.Context, opts *ListItemsOptions) ([]Record, error) {
	resp, err := d.transport.Get(ctx, &httpclient.Request{URL: d.url("items"), Params: opts.params()})
	if err != nil {
		return nil, err
	}
	var items []Record
	if err := json.Unmarshal(resp.Body, &items); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	return items, nil
}

// PushItems appends one or more JSON items to the dataset.
func (d *DatasetClient) PushItems(ctx context.Context, items any) error {
	_, err := d.transport.Post(ctx, &httpclient.Request{URL: d.url("items"), JSON: items})
	return err
}

// List enumerates the account's datasets.
func (d *DatasetCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return d.list(ctx, d.url(), opts)
}

// GetOrCreate returns the named dataset, creating it when missing.
func (d *DatasetCollectionClient) GetOrCreate(ctx context.Context, name string) (Record, error) {
	return d.postRecord(ctx, d.url(), map[string]any{"name": name}, nil)
}
