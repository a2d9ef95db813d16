package hiveforge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hiveforge/hiveforge-go/httpclient"
)

// apiVersionPrefix is the path prefix of the current API version.
const apiVersionPrefix = "/v2"

// Record is a parsed API object. Response envelopes are unwrapped so a Record
// always holds the resource itself, not the {"data": ...} wrapper.
type Record = map[string]any

// baseClient is the shared plumbing of every resource client: URL building,
// envelope unwrapping and 404-as-absence suppression over the transport.
type baseClient struct {
	transport httpclient.Client
	path      string
}

// resource builds a baseClient for the given resource path and optional ID.
func (c *Client) resource(resourcePath, id string) baseClient {
	path := apiVersionPrefix + "/" + resourcePath
	if id != "" {
		path += "/" + id
	}
	return baseClient{transport: c.transport, path: path}
}

// url joins additional path segments onto the resource path.
func (b *baseClient) url(segments ...string) string {
	if len(segments) == 0 {
		return b.path
	}
	return b.path + "/" + strings.Join(segments, "/")
}

// parseDataModel decodes a response body into a Record, unwrapping the
// standard {"data": ...} envelope when present. A body that is not a JSON
// object is a contract break, not a transient failure.
func parseDataModel(body []byte) (Record, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	if data, ok := envelope["data"]; ok {
		record, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected response shape: data is not an object")
		}
		return record, nil
	}
	return envelope, nil
}

// getRecord fetches a single resource. A 404 classed as "record not found"
// yields (nil, nil) rather than an error.
func (b *baseClient) getRecord(ctx context.Context, url string, params map[string]any) (Record, error) {
	resp, err := b.transport.Get(ctx, &httpclient.Request{URL: url, Params: params})
	if err != nil {
		if httpclient.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return parseDataModel(resp.Body)
}

// postRecord issues a POST with a JSON payload and parses the result.
func (b *baseClient) postRecord(ctx context.Context, url string, params map[string]any, payload any) (Record, error) {
	resp, err := b.transport.Post(ctx, &httpclient.Request{URL: url, Params: params, JSON: payload})
	if err != nil {
		return nil, err
	}
	return parseDataModel(resp.Body)
}

// putRecord issues a PUT with a JSON payload and parses the result.
func (b *baseClient) putRecord(ctx context.Context, url string, payload any) (Record, error) {
	resp, err := b.transport.Put(ctx, &httpclient.Request{URL: url, JSON: payload})
	if err != nil {
		return nil, err
	}
	return parseDataModel(resp.Body)
}

// delete removes a resource; a missing record counts as already deleted.
func (b *baseClient) delete(ctx context.Context, url string) error {
	_, err := b.transport.Delete(ctx, &httpclient.Request{URL: url})
	if err != nil && !httpclient.IsRecordNotFound(err) {
		return err
	}
	return nil
}

// list fetches a paginated collection envelope.
func (b *baseClient) list(ctx context.Context, url string, opts *ListOptions) (Record, error) {
	return b.getRecord(ctx, url, opts.params())
}

// ListOptions control collection pagination and ordering.
type ListOptions struct {
	Limit  int
	Offset int
	Desc   bool
}

func (o *ListOptions) params() map[string]any {
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
	return params
}
