package hiveforge

import (
	"context"
	"time"

	"github.com/hiveforge/hiveforge-go/httpclient"
)

// JobStatus is the lifecycle state of an actor run or build.
type JobStatus string

const (
	JobStatusReady     JobStatus = "READY"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusAborting  JobStatus = "ABORTING"
	JobStatusAborted   JobStatus = "ABORTED"
	JobStatusTimingOut JobStatus = "TIMING-OUT"
	JobStatusTimedOut  JobStatus = "TIMED-OUT"
)

// Terminal reports whether no further status transition can occur.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusSucceeded, JobStatusFailed, JobStatusAborted, JobStatusTimedOut:
		return true
	}
	return false
}

// indefiniteServerWait is the waitForFinish value sent when the caller has no
// wall-clock budget.
const indefiniteServerWait = 999999 * time.Second

var (
	// jobNotFoundGracePeriod bounds how long 404 responses are tolerated
	// while a freshly created job propagates to read replicas.
	jobNotFoundGracePeriod = 3 * time.Second

	// jobPollInterval is the pause between polling rounds, giving replicas
	// time to converge before the next read.
	jobPollInterval = 250 * time.Millisecond
)

// waitForFinish polls the job resource until it reaches a terminal status or
// the wall-clock budget runs out. Each round asks the server to long-poll up
// to the remaining budget via the waitForFinish parameter, so the loop spends
// its time waiting server-side rather than spinning.
//
// A nil wait means wait indefinitely (the context still applies). A job that
// stays invisible past the replication grace period yields (nil, nil).
func (b *baseClient) waitForFinish(ctx context.Context, wait *time.Duration) (Record, error) {
	started := time.Now()

	for {
		serverWait := indefiniteServerWait
		if wait != nil {
			serverWait = *wait - time.Since(started)
			if serverWait < 0 {
				serverWait = 0
			}
		}

		resp, err := b.transport.Get(ctx, &httpclient.Request{
			URL:    b.path,
			Params: map[string]any{"waitForFinish": int64(serverWait / time.Second)},
		})
		if err != nil {
			if httpclient.IsAPIStatusError(err, 404) {
				if time.Since(started) < jobNotFoundGracePeriod {
					if sleepErr := sleepContext(ctx, jobPollInterval); sleepErr != nil {
						return nil, sleepErr
					}
					continue
				}
				// The job never became visible; give up quietly.
				return nil, nil
			}
			return nil, err
		}

		job, err := parseDataModel(resp.Body)
		if err != nil {
			// A malformed job payload is a protocol mismatch, never retried.
			return nil, err
		}

		status, _ := job["status"].(string)
		if JobStatus(status).Terminal() {
			return job, nil
		}
		if wait != nil && time.Since(started) >= *wait {
			return job, nil
		}

		if sleepErr := sleepContext(ctx, jobPollInterval); sleepErr != nil {
			return nil, sleepErr
		}
	}
}

// waitBudget converts an optional variadic wait argument into the poller's
// budget: absent means indefinite.
func waitBudget(wait []time.Duration) *time.Duration {
	if len(wait) == 0 {
		return nil
	}
	return &wait[0]
}

// sleepContext blocks for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
