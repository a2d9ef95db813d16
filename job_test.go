package hiveforge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiveforge/hiveforge-go/config"
	"github.com/hiveforge/hiveforge-go/logger"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.BaseURL = serverURL
	cfg.MaxRetries = 2
	cfg.MinRetryDelay = time.Millisecond
	c, err := NewClient(WithConfig(cfg), WithLogger(logger.NewNop()))
	require.NoError(t, err)
	return c
}

// shortenPollTimings speeds up poller tests and restores the defaults after.
func shortenPollTimings(t *testing.T, grace, interval time.Duration) {
	t.Helper()
	prevGrace, prevInterval := jobNotFoundGracePeriod, jobPollInterval
	jobNotFoundGracePeriod, jobPollInterval = grace, interval
	t.Cleanup(func() {
		jobNotFoundGracePeriod, jobPollInterval = prevGrace, prevInterval
	})
}

func notFoundBody() string {
	return `{"error":{"message":"Run was not found","type":"record-not-found"}}`
}

func runBody(status JobStatus) string {
	return fmt.Sprintf(`{"data":{"id":"run-1","status":"%s"}}`, status)
}

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobStatusReady, false},
		{JobStatusRunning, false},
		{JobStatusAborting, false},
		{JobStatusTimingOut, false},
		{JobStatusSucceeded, true},
		{JobStatusFailed, true},
		{JobStatusAborted, true},
		{JobStatusTimedOut, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestWaitForFinishReturnsTerminalJob(t *testing.T) {
	shortenPollTimings(t, 3*time.Second, time.Millisecond)

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			fmt.Fprint(w, runBody(JobStatusRunning))
			return
		}
		fmt.Fprint(w, runBody(JobStatusSucceeded))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	job, err := c.Run("run-1").WaitForFinish(context.Background())
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, string(JobStatusSucceeded), job["status"])
	assert.Equal(t, int64(2), requests.Load())
}

func TestWaitForFinishToleratesReplicationLag(t *testing.T) {
	shortenPollTimings(t, 3*time.Second, time.Millisecond)

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// The job is invisible for the first two polls, then appears
		// already finished.
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFoundBody())
			return
		}
		fmt.Fprint(w, runBody(JobStatusSucceeded))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	job, err := c.Run("run-1").WaitForFinish(context.Background())
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, string(JobStatusSucceeded), job["status"])
}

func TestWaitForFinishGivesUpAfterGracePeriod(t *testing.T) {
	shortenPollTimings(t, 50*time.Millisecond, 5*time.Millisecond)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundBody())
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	job, err := c.Run("run-missing").WaitForFinish(context.Background())
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestWaitForFinishZeroWaitTerminalJob(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "0", r.URL.Query().Get("waitForFinish"))
		fmt.Fprint(w, runBody(JobStatusSucceeded))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	start := time.Now()
	job, err := c.Run("run-1").WaitForFinish(context.Background(), 0)
	require.NoError(t, err)

	require.NotNil(t, job)
	assert.Equal(t, string(JobStatusSucceeded), job["status"])
	assert.Equal(t, int64(1), requests.Load())
	// Returns immediately, no poll-interval sleeping.
	assert.Less(t, time.Since(start), jobPollInterval)
}

func TestWaitForFinishZeroWaitRunningJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, runBody(JobStatusRunning))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	// An exhausted budget returns the latest snapshot even when the job has
	// not finished.
	job, err := c.Run("run-1").WaitForFinish(context.Background(), 0)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, string(JobStatusRunning), job["status"])
}

func TestWaitForFinishSendsRemainingBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The remaining budget is truncated to whole seconds, so the very
		// first round may already report one second less.
		assert.Contains(t, []string{"29", "30"}, r.URL.Query().Get("waitForFinish"))
		fmt.Fprint(w, runBody(JobStatusSucceeded))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.Run("run-1").WaitForFinish(context.Background(), 30*time.Second)
	require.NoError(t, err)
}

func TestWaitForFinishMalformedJobIsFatal(t *testing.T) {
	shortenPollTimings(t, 3*time.Second, time.Millisecond)

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"data":[1,2,3]}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.Run("run-1").WaitForFinish(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response shape")
	// A contract break is never retried.
	assert.Equal(t, int64(1), requests.Load())
}

func TestWaitForFinishPropagatesOtherAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"Insufficient permissions","type":"insufficient-permissions"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.Run("run-1").WaitForFinish(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient-permissions")
}

func TestWaitForFinishHonorsContextCancellation(t *testing.T) {
	shortenPollTimings(t, 3*time.Second, 50*time.Millisecond)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, runBody(JobStatusRunning))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	_, err := c.Run("run-1").WaitForFinish(ctx)
	require.Error(t, err)
}
