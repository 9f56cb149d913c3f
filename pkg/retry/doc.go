// Package retry provides backoff and retry logic for handling transient
// failures in lookup requests against the remote profile endpoint.
//
// Features:
//   - Exponential backoff with jitter for transport failures
//   - Fixed step schedules (StepBackoff) for rate-limit escalation
//   - Context support for cancellation
//   - Configurable retry predicates
//
// Basic usage:
//
//	// Simple retry with defaults
//	err := retry.Do(func() error {
//		return client.Lookup(ctx, identifier)
//	}, nil)
//
//	// Custom configuration
//	cfg := &retry.Config{
//		MaxAttempts: 5,
//		Backoff: &retry.ExponentialBackoff{
//			BaseDelay:    2 * time.Second,
//			MaxDelay:     30 * time.Second,
//			Multiplier:   2.0,
//			JitterFactor: 0.1,
//		},
//		RetryIf: retry.DefaultRetryIf,
//		Logger:  logger.GetLogger(),
//	}
//	err := retry.Do(operation, cfg)
package retry
