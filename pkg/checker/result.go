package checker

import "time"

// Outcome is the final classification of one identifier
type Outcome string

const (
	OutcomeFree  Outcome = "FREE"
	OutcomeTaken Outcome = "TAKEN"
	OutcomeError Outcome = "ERROR"
)

// CheckResult is the immutable outcome of checking one identifier. It is
// owned by the checker that produced it until handed to the aggregator.
type CheckResult struct {
	Identifier string
	Outcome    Outcome
	// Message carries the error detail when Outcome is OutcomeError
	Message  string
	Attempts int
	Duration time.Duration
}
