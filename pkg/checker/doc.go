// Package checker resolves single identifiers against the remote profile
// lookup endpoint.
//
// A Checker wraps a LookupClient (the HTTP transport) and the shared rate
// governor. Each Check call waits on the governor, issues one GET per
// attempt, and classifies the response:
//
//   - 429 (or a throttle keyword on a 200) records a rate-limit hit on the
//     governor and retries on the 30s/3m/5m/10m escalation schedule, without
//     an attempt bound.
//   - Network failures and 5xx responses retry a bounded number of times
//     with exponential backoff, then settle as an Error outcome.
//   - 404 or the configured not-found marker classifies as Free; the
//     profile marker as Taken; anything ambiguous defaults to Taken.
//
// Per-identifier errors never abort the scan; every identifier yields
// exactly one CheckResult.
package checker
