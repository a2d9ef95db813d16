package httpclient

import (
	"sync"
	"sync/atomic"
)

// Statistics tracks crude transport observability counters. One instance is
// owned by each transport and shared by all logical calls issued through it,
// so every mutation path must be safe under concurrent use.
type Statistics struct {
	calls    atomic.Int64
	requests atomic.Int64

	mu sync.Mutex
	// rateLimitErrors[i] counts 429 responses observed on attempt i+1.
	rateLimitErrors []int64
}

// addCall records one logical call. Incremented exactly once per Do,
// regardless of how many attempts it takes.
func (s *Statistics) addCall() {
	s.calls.Add(1)
}

// addRequest records one physical HTTP attempt.
func (s *Statistics) addRequest() {
	s.requests.Add(1)
}

// AddRateLimitError records a rate-limit (429) response observed on the given
// 1-based attempt. The backing sequence grows as needed so out-of-order
// attempt numbers are accepted.
func (s *Statistics) AddRateLimitError(attempt int) error {
	if attempt < 1 {
		return NewValidationError("attempt must be greater than or equal to 1", "attempt")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.rateLimitErrors) < attempt {
		s.rateLimitErrors = append(s.rateLimitErrors, 0)
	}
	s.rateLimitErrors[attempt-1]++
	return nil
}

// Calls returns the number of logical calls issued so far.
func (s *Statistics) Calls() int64 {
	return s.calls.Load()
}

// Requests returns the number of physical HTTP attempts issued so far.
// Always >= Calls.
func (s *Statistics) Requests() int64 {
	return s.requests.Load()
}

// RateLimitErrors returns a copy of the per-attempt 429 counts. Index i holds
// the count observed on attempt i+1.
func (s *Statistics) RateLimitErrors() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.rateLimitErrors))
	copy(out, s.rateLimitErrors)
	return out
}

// TotalRateLimitErrors returns the total number of 429 responses observed.
func (s *Statistics) TotalRateLimitErrors() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, n := range s.rateLimitErrors {
		total += n
	}
	return total
}
