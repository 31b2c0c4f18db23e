package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/pagelingo/internal/chunk"
	"codeberg.org/snonux/pagelingo/internal/provider"
)

// ErrAllProvidersExhausted means every provider ran out of attempts for
// a chunk. The whole translation job fails; there is no partial page
// translation.
var ErrAllProvidersExhausted = errors.New("all translation providers exhausted")

// Attempt records one translation attempt for logging and tests.
type Attempt struct {
	ChunkID  int
	Provider string
	Number   int
	Err      error // nil on success
}

// Options configures a Dispatcher. Zero values select the defaults.
type Options struct {
	// MaxAttempts is the attempt budget per provider (default 3).
	MaxAttempts int

	// BackoffStep is the base delay between attempts (default 2s). The
	// delay grows linearly: step, 2*step, 3*step.
	BackoffStep time.Duration

	// WarmupBudget bounds the total time spent waiting for a cold model
	// per provider (default 60s). Warm-up waits do not consume attempts.
	WarmupBudget time.Duration

	// MaxWarmupWait caps a single warm-up wait regardless of what the
	// provider reports (default 15s).
	MaxWarmupWait time.Duration

	// CallTimeout applies to each individual provider call (default 30s).
	CallTimeout time.Duration

	// OnAttempt, when set, is invoked after every attempt.
	OnAttempt func(Attempt)

	// Sleep replaces the backoff sleep, for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Dispatcher calls providers with bounded retries and fallback.
type Dispatcher struct {
	providers []provider.Provider
	breakers  []*gobreaker.CircuitBreaker
	opts      Options
}

// New creates a dispatcher over the given providers in priority order.
func New(providers []provider.Provider, opts *Options) *Dispatcher {
	options := Options{}
	if opts != nil {
		options = *opts
	}
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = 3
	}
	if options.BackoffStep <= 0 {
		options.BackoffStep = 2 * time.Second
	}
	if options.WarmupBudget <= 0 {
		options.WarmupBudget = 60 * time.Second
	}
	if options.MaxWarmupWait <= 0 {
		options.MaxWarmupWait = 15 * time.Second
	}
	if options.CallTimeout <= 0 {
		options.CallTimeout = 30 * time.Second
	}
	if options.Sleep == nil {
		options.Sleep = sleepContext
	}

	breakers := make([]*gobreaker.CircuitBreaker, len(providers))
	for i, p := range providers {
		breakers[i] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    p.Name(),
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
	}

	return &Dispatcher{
		providers: providers,
		breakers:  breakers,
		opts:      options,
	}
}

// Dispatch translates one chunk, trying each provider in priority order
// until one succeeds. When every provider is exhausted the returned
// error wraps ErrAllProvidersExhausted.
func (d *Dispatcher) Dispatch(ctx context.Context, c chunk.Chunk, targetLanguage string) (provider.Result, error) {
	var lastErr error

	for i, p := range d.providers {
		text, err := d.tryProvider(ctx, i, c, targetLanguage)
		if err == nil {
			return provider.Result{
				ChunkID:        c.ID,
				TranslatedText: text,
				Provider:       p.Name(),
			}, nil
		}
		if ctx.Err() != nil {
			return provider.Result{}, err
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("no provider configured")
	}
	return provider.Result{}, fmt.Errorf("chunk %d: %w: %w",
		c.ID, ErrAllProvidersExhausted, lastErr)
}

// tryProvider runs the per-provider retry loop: up to MaxAttempts
// attempts with linear backoff. Model warm-up waits repeat the same
// attempt until the warm-up budget runs out; credential failures and an
// open circuit breaker return immediately so the caller can move on.
func (d *Dispatcher) tryProvider(ctx context.Context, idx int, c chunk.Chunk, targetLanguage string) (string, error) {
	name := d.providers[idx].Name()
	warmupLeft := d.opts.WarmupBudget
	attempt := 1

	for {
		text, err := d.call(ctx, idx, c.Text, targetLanguage)
		d.record(Attempt{ChunkID: c.ID, Provider: name, Number: attempt, Err: err})
		if err == nil {
			return text, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%s circuit open: %w", name, err)
		}
		if ctx.Err() != nil {
			return "", err
		}

		kind := provider.KindOf(err)
		if kind == provider.KindUnauthenticated {
			return "", err
		}

		if kind == provider.KindModelLoading && warmupLeft > 0 {
			wait := provider.RetryAfterOf(err)
			if wait <= 0 {
				wait = d.opts.BackoffStep
			}
			if wait > d.opts.MaxWarmupWait {
				wait = d.opts.MaxWarmupWait
			}
			if wait > warmupLeft {
				wait = warmupLeft
			}
			if sleepErr := d.opts.Sleep(ctx, wait); sleepErr != nil {
				return "", sleepErr
			}
			warmupLeft -= wait
			continue
		}

		if attempt >= d.opts.MaxAttempts {
			return "", err
		}
		backoff := d.opts.BackoffStep * time.Duration(attempt)
		if sleepErr := d.opts.Sleep(ctx, backoff); sleepErr != nil {
			return "", sleepErr
		}
		attempt++
	}
}

// call performs one provider call through its circuit breaker with the
// per-call timeout applied. Warm-up responses are not counted as breaker
// failures; a cold model is expected behavior, not a service fault.
func (d *Dispatcher) call(ctx context.Context, idx int, text, targetLanguage string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.opts.CallTimeout)
	defer cancel()

	out, err := d.breakers[idx].Execute(func() (interface{}, error) {
		translated, terr := d.providers[idx].Translate(callCtx, text, targetLanguage)
		if terr != nil && provider.KindOf(terr) == provider.KindModelLoading {
			return terr, nil
		}
		return translated, terr
	})
	if err != nil {
		return "", err
	}

	switch v := out.(type) {
	case string:
		return v, nil
	case error:
		return "", v
	default:
		return "", fmt.Errorf("unexpected provider response type %T", out)
	}
}

func (d *Dispatcher) record(a Attempt) {
	if d.opts.OnAttempt != nil {
		d.opts.OnAttempt(a)
	}
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
