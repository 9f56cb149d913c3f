// Package scanner orchestrates a scan run.
//
// It connects the identifier generator, the availability checker, and the
// result writer under a bounded-concurrency batch scheduler: at most
// `concurrency` checks are in flight at any instant, each batch is fully
// awaited, and results are surfaced in enumeration order so the log is
// deterministic.
//
// Stats accumulates the run counters (checked, free, taken, errors) under a
// mutex; Reporter samples them on a timer and emits progress snapshots with
// throughput and ETA without blocking the workers.
package scanner
