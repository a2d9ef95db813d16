package httpclient

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Outcome is the tagged classification an attempt reports back to the retry
// engine, decoupling retry control flow from the attempt's own logic.
type Outcome int

const (
	// Success ends the loop; the attempt's result stands.
	Success Outcome = iota
	// Retry schedules another attempt after a backoff sleep, unless the
	// retry budget is exhausted.
	Retry
	// Stop ends the loop immediately; the attempt's error propagates
	// regardless of the remaining retry budget.
	Stop
)

// attemptFunc executes one attempt. attempt is 1-based and strictly
// monotonically increasing within a single retry loop.
type attemptFunc func(ctx context.Context, attempt int) (Outcome, error)

// backoffPolicy describes the retry schedule. maxRetries counts retries after
// the first attempt, so the loop runs at most maxRetries+1 attempts.
type backoffPolicy struct {
	maxRetries   int
	base         time.Duration
	factor       float64
	randomFactor float64
	// sleep is a seam for tests; nil means context-aware real sleeping.
	sleep func(ctx context.Context, d time.Duration) error
}

// delay computes the jittered exponential backoff before the attempt
// following the given one: U(1, 1+randomFactor) * base * factor^(attempt-1).
func (p *backoffPolicy) delay(attempt int) time.Duration {
	factor := math.Min(math.Max(p.factor, 1), 10)
	randomFactor := math.Min(math.Max(p.randomFactor, 0), 1)

	jitter := 1 + rand.Float64()*randomFactor
	return time.Duration(jitter * float64(p.base) * math.Pow(factor, float64(attempt-1)))
}

// retryWithExpBackoff drives fn through the retry schedule. The final
// attempt's error always propagates when unresolved; nothing fails silently.
func retryWithExpBackoff(ctx context.Context, p *backoffPolicy, fn attemptFunc) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 1; ; attempt++ {
		outcome, err := fn(ctx, attempt)
		switch outcome {
		case Success:
			return nil
		case Stop:
			return err
		}

		if attempt > p.maxRetries {
			return err
		}
		if sleepErr := sleep(ctx, p.delay(attempt)); sleepErr != nil {
			return NewNetworkError("retry wait interrupted", sleepErr)
		}
	}
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
