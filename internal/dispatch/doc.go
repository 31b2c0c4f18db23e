// Package dispatch drives a chunk translation through the configured
// providers in priority order. Each provider gets a bounded number of
// attempts with linear backoff; model warm-up waits are bounded by a
// separate budget so they do not eat into the retry schedule, and
// credential failures escalate to the next provider immediately. A
// circuit breaker per provider skips services that keep failing.
package dispatch
