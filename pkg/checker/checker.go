package checker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vanityscan/pkg/config"
	errs "vanityscan/pkg/errors"
	"vanityscan/pkg/governor"
	"vanityscan/pkg/logger"
	"vanityscan/pkg/retry"
)

// throttleKeyword marks a throttle response hiding behind a 200 status
const throttleKeyword = "too many requests"

// Checker resolves one identifier to a Free/Taken/Error outcome. Rate-limit
// responses are retried without bound on an escalating schedule; transport
// failures are retried a bounded number of times and then degrade to an
// Error outcome so the scan continues.
type Checker struct {
	client   LookupClient
	governor *governor.Governor

	rateLimitBackoff retry.BackoffStrategy
	transportBackoff retry.BackoffStrategy
	maxRetries       int

	notFoundMarker string
	profileMarker  string

	logger logger.Logger

	// injectable for tests
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a checker that consults gov before every request
func New(client LookupClient, gov *governor.Governor, cfg *config.TransportConfig, log logger.Logger) *Checker {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Checker{
		client:           client,
		governor:         gov,
		rateLimitBackoff: retry.DefaultRateLimitBackoff(),
		transportBackoff: retry.DefaultExponentialBackoff(),
		maxRetries:       cfg.MaxRetries,
		notFoundMarker:   strings.ToLower(cfg.NotFoundMarker),
		profileMarker:    strings.ToLower(cfg.ProfileMarker),
		logger:           log,
		sleep:            retry.Wait,
	}
}

// Check resolves one identifier. It blocks on the governor before each
// attempt and returns an Error outcome rather than failing the scan.
func (c *Checker) Check(ctx context.Context, identifier string) CheckResult {
	start := time.Now()
	attempts := 0
	rateLimitHits := 0

	for {
		resp, err := c.lookup(ctx, identifier, &attempts)
		if err != nil {
			return c.errorResult(identifier, err.Error(), attempts, start)
		}

		if isRateLimited(resp) {
			rateLimitHits++
			c.governor.RecordRateLimitHit()

			delay := c.rateLimitBackoff.NextDelay(rateLimitHits)
			c.logger.WarnWithFields("rate limited, backing off", map[string]interface{}{
				"identifier": identifier,
				"hit":        rateLimitHits,
				"delay":      delay,
			})
			if err := c.sleep(ctx, delay); err != nil {
				return c.errorResult(identifier, fmt.Sprintf("cancelled during backoff: %v", err), attempts, start)
			}
			continue
		}

		return c.classify(identifier, resp, attempts, start)
	}
}

// lookup fetches one settled response, retrying transport failures and
// retryable server statuses a bounded number of times. Rate-limit responses
// settle here; the caller owns their escalation schedule.
func (c *Checker) lookup(ctx context.Context, identifier string, attempts *int) (*LookupResponse, error) {
	var resp *LookupResponse

	err := retry.Do(func() error {
		if err := c.governor.WaitIfNeeded(ctx); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		*attempts++
		r, err := c.client.Lookup(ctx, identifier)
		c.governor.RecordRequest()
		if err != nil {
			return err
		}

		if r.StatusCode != http.StatusTooManyRequests && errs.IsRetryableStatusCode(r.StatusCode) {
			return errs.New(errs.TypeForStatusCode(r.StatusCode),
				fmt.Sprintf("server returned status %d", r.StatusCode), r.StatusCode)
		}

		resp = r
		return nil
	}, &retry.Config{
		MaxAttempts: c.maxRetries + 1,
		Backoff:     c.transportBackoff,
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      c.logger,
	})
	if err != nil {
		c.logger.ErrorWithFields("lookup failed", map[string]interface{}{
			"identifier": identifier,
			"attempts":   *attempts,
			"error":      err.Error(),
		})
		return nil, err
	}
	return resp, nil
}

// isRateLimited reports whether the response is an upstream throttle signal.
// Only 429 counts; 404/403/502 are classified on their own merits so that
// genuinely free identifiers are never mistaken for throttling.
func isRateLimited(resp *LookupResponse) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusOK &&
		strings.Contains(strings.ToLower(resp.Body), throttleKeyword)
}

// classify turns a settled response into a Free/Taken/Error outcome
func (c *Checker) classify(identifier string, resp *LookupResponse, attempts int, start time.Time) CheckResult {
	if resp.StatusCode == http.StatusNotFound {
		return c.result(identifier, OutcomeFree, attempts, start)
	}

	if resp.StatusCode != http.StatusOK {
		return c.errorResult(identifier, fmt.Sprintf("unexpected status code %d", resp.StatusCode), attempts, start)
	}

	body := strings.ToLower(resp.Body)
	switch {
	case c.notFoundMarker != "" && strings.Contains(body, c.notFoundMarker):
		return c.result(identifier, OutcomeFree, attempts, start)
	case c.profileMarker != "" && strings.Contains(body, c.profileMarker):
		return c.result(identifier, OutcomeTaken, attempts, start)
	default:
		// Ambiguous payloads default to taken: a false "free" would have
		// the user act on a name they cannot claim.
		c.logger.DebugWithFields("ambiguous payload, defaulting to taken", map[string]interface{}{
			"identifier": identifier,
			"status":     resp.StatusCode,
		})
		return c.result(identifier, OutcomeTaken, attempts, start)
	}
}

func (c *Checker) result(identifier string, outcome Outcome, attempts int, start time.Time) CheckResult {
	return CheckResult{
		Identifier: identifier,
		Outcome:    outcome,
		Attempts:   attempts,
		Duration:   time.Since(start),
	}
}

func (c *Checker) errorResult(identifier, message string, attempts int, start time.Time) CheckResult {
	return CheckResult{
		Identifier: identifier,
		Outcome:    OutcomeError,
		Message:    message,
		Attempts:   attempts,
		Duration:   time.Since(start),
	}
}
