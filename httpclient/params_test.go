package httpclient

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParams(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	tests := []struct {
		name     string
		params   map[string]any
		expected url.Values
	}{
		{
			name:     "booleans become integers",
			params:   map[string]any{"desc": true, "clean": false},
			expected: url.Values{"desc": {"1"}, "clean": {"0"}},
		},
		{
			name:     "nil values are dropped",
			params:   map[string]any{"token": nil, "limit": 10},
			expected: url.Values{"limit": {"10"}},
		},
		{
			name:     "lists expand into repeated pairs",
			params:   map[string]any{"fields": []string{"id", "status", "startedAt"}},
			expected: url.Values{"fields": {"id", "status", "startedAt"}},
		},
		{
			name:     "mixed-type list",
			params:   map[string]any{"values": []any{"a", 2, true}},
			expected: url.Values{"values": {"a", "2", "1"}},
		},
		{
			name:     "UTC time keeps millisecond precision",
			params:   map[string]any{"since": time.Date(2026, 3, 1, 12, 30, 45, 123_000_000, time.UTC)},
			expected: url.Values{"since": {"2026-03-01T12:30:45.123Z"}},
		},
		{
			name:     "zoned time is normalized to UTC",
			params:   map[string]any{"since": time.Date(2026, 3, 1, 13, 30, 45, 0, prague)},
			expected: url.Values{"since": {"2026-03-01T12:30:45.000Z"}},
		},
		{
			name:     "durations become whole seconds",
			params:   map[string]any{"waitForFinish": 45 * time.Second},
			expected: url.Values{"waitForFinish": {"45"}},
		},
		{
			name:     "floats keep their precision",
			params:   map[string]any{"factor": 2.5},
			expected: url.Values{"factor": {"2.5"}},
		},
		{
			name:     "nil pointer is dropped",
			params:   map[string]any{"flag": (*bool)(nil)},
			expected: url.Values{},
		},
		{
			name:     "pointer is dereferenced",
			params:   map[string]any{"limit": ptr(25)},
			expected: url.Values{"limit": {"25"}},
		},
		{
			name:     "empty map yields empty values",
			params:   map[string]any{},
			expected: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := NormalizeParams(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}
}

func TestNormalizeParamsRejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeParams(map[string]any{"value": tt.value})
			require.Error(t, err)
			assert.True(t, IsErrorType(err, ValidationError))
		})
	}
}

func TestNormalizeParamsNonFiniteInsideList(t *testing.T) {
	_, err := NormalizeParams(map[string]any{"values": []float64{1, math.NaN()}})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ValidationError))
}

func ptr[T any](v T) *T { return &v }
