// Package governor provides the global rate governor shared by all scan
// workers.
//
// A single Governor instance is injected into every checker. It owns the
// only cross-worker throttling state in the process:
//   - minimum spacing between any two requests (token bucket)
//   - a cooldown window measured from the most recent upstream rate-limit
//     signal, honored process-wide
//   - a courtesy pause after every N requests, regardless of signals
//
// All reads and updates of the shared timestamps and counters happen under
// a mutex so concurrent workers observe a consistent view of "time since
// last request" and "time since last rate limit".
package governor
