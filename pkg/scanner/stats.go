package scanner

import (
	"sync"
	"time"

	"vanityscan/pkg/checker"
)

// Stats accumulates run statistics. Mutated exactly once per completed
// result, under a mutex; snapshot reads never block worker progress for
// long.
type Stats struct {
	mu        sync.Mutex
	total     uint64
	completed uint64
	free      uint64
	taken     uint64
	errors    uint64
	startTime time.Time
}

// Snapshot is an eventually-consistent view of the run
type Snapshot struct {
	Total     uint64
	Completed uint64
	Free      uint64
	Taken     uint64
	Errors    uint64
	Elapsed   time.Duration
	// RatePerMinute is completed checks per elapsed minute
	RatePerMinute float64
	// ETA estimates time until the remaining identifiers are checked;
	// zero until the rate is measurable
	ETA time.Duration
}

// NewStats creates a stats accumulator for a space of the given size
func NewStats(total uint64) *Stats {
	return &Stats{
		total:     total,
		startTime: time.Now(),
	}
}

// Record counts one completed check result
func (s *Stats) Record(res checker.CheckResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed++
	switch res.Outcome {
	case checker.OutcomeFree:
		s.free++
	case checker.OutcomeTaken:
		s.taken++
	case checker.OutcomeError:
		s.errors++
	}
}

// Snapshot returns a consistent copy of the counters with derived rate/ETA
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := time.Since(s.startTime)
	snap := Snapshot{
		Total:     s.total,
		Completed: s.completed,
		Free:      s.free,
		Taken:     s.taken,
		Errors:    s.errors,
		Elapsed:   elapsed,
	}

	minutes := elapsed.Minutes()
	if minutes > 0 && s.completed > 0 {
		snap.RatePerMinute = float64(s.completed) / minutes
		remaining := float64(s.total - s.completed)
		snap.ETA = time.Duration(remaining / snap.RatePerMinute * float64(time.Minute))
	}

	return snap
}
