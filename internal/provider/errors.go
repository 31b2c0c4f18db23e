package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind classifies a provider failure for retry decisions.
type Kind int

const (
	// KindOther is any failure without a more specific classification.
	KindOther Kind = iota

	// KindUnauthenticated means the credential is missing or rejected.
	// Never retried against the same provider.
	KindUnauthenticated

	// KindModelLoading means the model is warming up and the request
	// should be repeated after the reported delay.
	KindModelLoading

	// KindRateLimited means the provider throttled the request.
	KindRateLimited

	// KindNetwork covers transport failures and timeouts.
	KindNetwork
)

// String returns the wire name of the kind, used in API error responses.
func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindModelLoading:
		return "model_loading"
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network_error"
	default:
		return "other"
	}
}

// Retryable reports whether a failure of this kind may succeed on a
// later attempt against the same provider.
func (k Kind) Retryable() bool {
	switch k {
	case KindModelLoading, KindRateLimited, KindNetwork:
		return true
	default:
		return false
	}
}

// Error is a classified provider failure.
type Error struct {
	Provider string
	Kind     Kind
	Message  string
	// RetryAfter is the provider-reported wait before retrying, if any.
	// Only set for model-loading and rate-limit failures.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// KindOf extracts the failure kind from an error chain. Context timeouts
// count as network failures for retry purposes.
func KindOf(err error) Kind {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindOther
}

// RetryAfterOf returns the provider-reported retry delay from an error
// chain, or zero if none was reported.
func RetryAfterOf(err error) time.Duration {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.RetryAfter
	}
	return 0
}

// kindOfStatus maps an HTTP status code to a failure kind.
func kindOfStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindUnauthenticated
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindNetwork
	default:
		return KindOther
	}
}
