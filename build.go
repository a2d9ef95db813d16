package hiveforge

import (
	"context"
	"time"
)

// BuildClient targets a single actor build.
type BuildClient struct {
	baseClient
}

// Get retrieves the build. Returns (nil, nil) when it does not exist.
func (b *BuildClient) Get(ctx context.Context) (Record, error) {
	return b.getRecord(ctx, b.url(), nil)
}

// Abort stops the build.
func (b *BuildClient) Abort(ctx context.Context) (Record, error) {
	return b.postRecord(ctx, b.url("abort"), nil, nil)
}

// WaitForFinish polls the build until it reaches a terminal status or the
// optional wall-clock budget elapses.
func (b *BuildClient) WaitForFinish(ctx context.Context, wait ...time.Duration) (Record, error) {
	return b.waitForFinish(ctx, waitBudget(wait))
}
