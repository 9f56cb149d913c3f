package scanner

import (
	"sync"
	"time"

	"vanityscan/pkg/logger"
)

// Reporter emits progress snapshots on a fixed wall-clock cadence. Emission
// is fire-and-forget relative to the check pipeline: workers never wait on
// the reporter.
type Reporter struct {
	stats    *Stats
	interval time.Duration
	logger   logger.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// NewReporter creates a reporter over the given stats
func NewReporter(stats *Stats, interval time.Duration, log logger.Logger) *Reporter {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Reporter{
		stats:    stats,
		interval: interval,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Start launches the reporting loop
func (r *Reporter) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.emit()
			case <-r.done:
				return
			}
		}
	}()
}

// Stop ends the reporting loop and waits for it to exit
func (r *Reporter) Stop() {
	close(r.done)
	r.wg.Wait()
}

// emit logs one progress snapshot
func (r *Reporter) emit() {
	snap := r.stats.Snapshot()
	r.logger.InfoWithFields("progress", map[string]interface{}{
		"completed":    snap.Completed,
		"total":        snap.Total,
		"free":         snap.Free,
		"taken":        snap.Taken,
		"errors":       snap.Errors,
		"rate_per_min": snap.RatePerMinute,
		"eta":          snap.ETA.Round(time.Second),
		"elapsed":      snap.Elapsed.Round(time.Second),
	})
}
