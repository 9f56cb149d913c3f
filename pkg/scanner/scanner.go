package scanner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"vanityscan/pkg/checker"
	"vanityscan/pkg/generator"
	"vanityscan/pkg/logger"
)

// AvailabilityChecker resolves one identifier to a check result
type AvailabilityChecker interface {
	Check(ctx context.Context, identifier string) checker.CheckResult
}

// ResultWriter consumes one result line; implementations serialize writes
type ResultWriter interface {
	WriteResult(res checker.CheckResult) error
}

// Scanner drives the scan: it pulls identifiers from the generator in
// batches of at most `concurrency`, fans each batch out to concurrent
// checks, and surfaces results in enumeration order. The batch discipline
// trades some throughput for deterministic, lexicographic log output.
type Scanner struct {
	gen         *generator.Generator
	checker     AvailabilityChecker
	writer      ResultWriter
	stats       *Stats
	reporter    *Reporter
	concurrency int
	logger      logger.Logger
}

// New creates a scanner over the given identifier space
func New(gen *generator.Generator, chk AvailabilityChecker, writer ResultWriter, concurrency int, reportInterval time.Duration, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.GetLogger()
	}

	stats := NewStats(gen.Remaining())

	return &Scanner{
		gen:         gen,
		checker:     chk,
		writer:      writer,
		stats:       stats,
		reporter:    NewReporter(stats, reportInterval, log),
		concurrency: concurrency,
		logger:      log,
	}
}

// Stats exposes the run statistics accumulator
func (s *Scanner) Stats() *Stats {
	return s.stats
}

// Run scans the whole identifier space. Every identifier is checked exactly
// once; per-identifier errors are recorded, not fatal. Only a failed result
// write aborts the run. On context cancellation the current batch finishes
// and no new checks are issued.
func (s *Scanner) Run(ctx context.Context) (Snapshot, error) {
	s.logger.InfoWithFields("scan starting", map[string]interface{}{
		"length":      s.gen.Length(),
		"total":       s.gen.Remaining(),
		"concurrency": s.concurrency,
	})

	s.reporter.Start()
	defer s.reporter.Stop()

	batch := make([]string, 0, s.concurrency)
	for {
		batch = batch[:0]
		for len(batch) < s.concurrency {
			id, ok := s.gen.Next()
			if !ok {
				break
			}
			batch = append(batch, id)
		}
		if len(batch) == 0 {
			break
		}

		results := s.checkBatch(ctx, batch)

		for _, res := range results {
			s.stats.Record(res)
			if err := s.writer.WriteResult(res); err != nil {
				return s.stats.Snapshot(), fmt.Errorf("failed to write result: %w", err)
			}
		}

		if ctx.Err() != nil {
			s.logger.Warn("scan interrupted, stopping after in-flight batch")
			return s.stats.Snapshot(), ctx.Err()
		}
	}

	final := s.stats.Snapshot()
	s.logger.InfoWithFields("scan complete", map[string]interface{}{
		"checked": final.Completed,
		"free":    final.Free,
		"taken":   final.Taken,
		"errors":  final.Errors,
		"elapsed": final.Elapsed.Round(time.Second),
	})
	return final, nil
}

// checkBatch dispatches one batch of identifiers concurrently and returns
// the results slot-indexed, preserving enumeration order. A panicking check
// degrades to an Error outcome for that identifier only.
func (s *Scanner) checkBatch(ctx context.Context, batch []string) []checker.CheckResult {
	results := make([]checker.CheckResult, len(batch))

	var g errgroup.Group
	for i, id := range batch {
		i, id := i, id
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.ErrorWithFields("check panicked", map[string]interface{}{
						"identifier": id,
						"panic":      fmt.Sprintf("%v", r),
					})
					results[i] = checker.CheckResult{
						Identifier: id,
						Outcome:    checker.OutcomeError,
						Message:    fmt.Sprintf("check panicked: %v", r),
					}
				}
			}()
			results[i] = s.checker.Check(ctx, id)
			return nil
		})
	}
	// Group funcs always return nil; panics settle into their result slot
	_ = g.Wait()

	return results
}
