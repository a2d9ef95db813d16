package hiveforge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataModel(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Record
		wantErr bool
	}{
		{
			name: "enveloped object",
			body: `{"data":{"id":"actor-1","name":"crawler"}}`,
			want: Record{"id": "actor-1", "name": "crawler"},
		},
		{
			name: "bare object without envelope",
			body: `{"id":"actor-1"}`,
			want: Record{"id": "actor-1"},
		},
		{
			name:    "data is not an object",
			body:    `{"data":[1,2,3]}`,
			wantErr: true,
		},
		{
			name:    "body is not JSON",
			body:    `<html>gateway error</html>`,
			wantErr: true,
		},
		{
			name:    "body is a JSON array",
			body:    `[{"id":"actor-1"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDataModel([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unexpected response shape")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetRecordSuppressesRecordNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"Actor was not found","type":"record-not-found"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	actor, err := c.Actor("missing").Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestGetRecordKeepsUnrelated404s(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"No such endpoint","type":"endpoint-not-found"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.Actor("missing").Get(context.Background())
	require.Error(t, err)
}

func TestDeleteToleratesMissingRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"Actor was not found","type":"record-not-found"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	assert.NoError(t, c.Actor("missing").Delete(context.Background()))
}

func TestListOptionsParams(t *testing.T) {
	tests := []struct {
		name string
		opts *ListOptions
		want map[string]any
	}{
		{name: "nil options", opts: nil, want: nil},
		{name: "zero options", opts: &ListOptions{}, want: map[string]any{}},
		{
			name: "all fields set",
			opts: &ListOptions{Limit: 10, Offset: 20, Desc: true},
			want: map[string]any{"limit": 10, "offset": 20, "desc": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.params())
		})
	}
}
