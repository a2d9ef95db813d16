package hiveforge

import "context"

// ScheduleClient targets a single schedule.
type ScheduleClient struct {
	baseClient
}

// ScheduleCollectionClient targets the account's schedule collection.
type ScheduleCollectionClient struct {
	baseClient
}

// Get retrieves the schedule. Returns (nil, nil) when it does not exist.
func (s *ScheduleClient) Get(ctx context.Context) (Record, error) {
	return s.getRecord(ctx, s.url(), nil)
}

// Update modifies the schedule's fields.
func (s *ScheduleClient) Update(ctx context.Context, fields Record) (Record, error) {
	return s.putRecord(ctx, s.url(), fields)
}

// Delete removes the schedule.
func (s *ScheduleClient) Delete(ctx context.Context) error {
	return s.delete(ctx, s.url())
}

// List enumerates the account's schedules.
func (s *ScheduleCollectionClient) List(ctx context.Context, opts *ListOptions) (Record, error) {
	return s.list(ctx, s.url(), opts)
}

// Create registers a new schedule.
func (s *ScheduleCollectionClient) Create(ctx context.Context, schedule Record) (Record, error) {
	return s.postRecord(ctx, s.url(), nil, schedule)
}
