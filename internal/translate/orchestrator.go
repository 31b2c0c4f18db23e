package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codeberg.org/snonux/pagelingo/internal/align"
	"codeberg.org/snonux/pagelingo/internal/chunk"
	"codeberg.org/snonux/pagelingo/internal/dispatch"
	"codeberg.org/snonux/pagelingo/internal/fragment"
	"codeberg.org/snonux/pagelingo/internal/provider"
)

var (
	// ErrUnsupportedLanguage means the target language is not in the
	// fixed supported set.
	ErrUnsupportedLanguage = errors.New("unsupported target language")

	// ErrNoProviderConfigured means no translation provider has a
	// credential configured.
	ErrNoProviderConfigured = errors.New("no translation provider configured")
)

// Options configures an Orchestrator. Zero values select the defaults.
type Options struct {
	// MaxChunkChars bounds chunk length (default chunk.DefaultMaxChars).
	MaxChunkChars int

	// Concurrency bounds in-flight chunk translations (default 6,
	// clamped to 1..16 to stay inside provider rate limits).
	Concurrency int

	// Dispatch overrides the dispatcher options, for tests.
	Dispatch *dispatch.Options
}

// Orchestrator coordinates the whole page-translation pipeline.
type Orchestrator struct {
	providers     []provider.Provider
	dispatcher    *dispatch.Dispatcher
	maxChunkChars int
	concurrency   int
}

// New creates an orchestrator over the given providers in priority order.
func New(providers []provider.Provider, opts *Options) *Orchestrator {
	options := Options{}
	if opts != nil {
		options = *opts
	}
	if options.MaxChunkChars <= 0 {
		options.MaxChunkChars = chunk.DefaultMaxChars
	}
	if options.Concurrency <= 0 {
		options.Concurrency = 6
	}
	if options.Concurrency > 16 {
		options.Concurrency = 16
	}

	return &Orchestrator{
		providers:     providers,
		dispatcher:    dispatch.New(providers, options.Dispatch),
		maxChunkChars: options.MaxChunkChars,
		concurrency:   options.Concurrency,
	}
}

// ProviderNames returns the names of the configured providers in
// priority order.
func (o *Orchestrator) ProviderNames() []string {
	names := make([]string, 0, len(o.providers))
	for _, p := range o.providers {
		names = append(names, p.Name())
	}
	return names
}

// TranslatePage translates the fragments into the target language and
// returns the rewrite instructions plus the recombined translated blob.
// The first hard failure fails the whole job; a partially translated
// page is never produced.
func (o *Orchestrator) TranslatePage(ctx context.Context, fragments []fragment.TextFragment, targetLanguage string) ([]align.RewriteInstruction, string, error) {
	if _, ok := provider.LookupLanguage(targetLanguage); !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, targetLanguage)
	}
	if len(o.providers) == 0 {
		return nil, "", ErrNoProviderConfigured
	}

	chunks := chunk.SplitFragments(fragments, o.maxChunkChars)
	if len(chunks) == 0 {
		return nil, "", nil
	}

	results, err := o.dispatchAll(ctx, chunks, targetLanguage)
	if err != nil {
		return nil, "", err
	}

	blob, err := chunk.Recombine(results)
	if err != nil {
		return nil, "", err
	}

	return align.Align(fragments, blob), blob, nil
}

// dispatchAll fans the chunks out to the dispatcher with bounded
// parallelism and waits for all of them. Results land in index-addressed
// slots so concurrent writes never contend; the first failure cancels
// the remaining work and its error is returned. In-flight calls run to
// completion after cancellation, their results are discarded.
func (o *Orchestrator) dispatchAll(ctx context.Context, chunks []chunk.Chunk, targetLanguage string) ([]provider.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]provider.Result, len(chunks))
	sem := make(chan struct{}, o.concurrency)

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, c := range chunks {
		wg.Add(1)
		go func(c chunk.Chunk) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				fail(ctx.Err())
				return
			}
			if ctx.Err() != nil {
				return
			}

			result, err := o.dispatcher.Dispatch(ctx, c, targetLanguage)
			if err != nil {
				fail(err)
				return
			}
			results[c.ID] = result
		}(c)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
