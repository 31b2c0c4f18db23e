// Package testutil provides mock implementations for testing
package testutil

import (
	"context"
	"sync"
)

// MockCall records one Translate invocation on a MockProvider.
type MockCall struct {
	Text           string
	TargetLanguage string
}

// MockProvider implements provider.Provider for testing. Each call to
// Translate pops the next scripted outcome; once the script is
// exhausted (or when no script is set) calls succeed.
type MockProvider struct {
	mu sync.Mutex

	// ProviderName is returned by Name(). Defaults to "mock".
	ProviderName string

	// Outcomes are consumed one per Translate call. A nil entry means
	// the call succeeds.
	Outcomes []error

	// Translator produces the text for successful calls. When nil a
	// "[language] text" placeholder is used.
	Translator func(text, targetLanguage string) string

	// AvailableErr is returned by IsAvailable.
	AvailableErr error

	calls []MockCall
}

// Translate implements provider.Provider.
func (m *MockProvider) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, TargetLanguage: targetLanguage})
	var outcome error
	if len(m.Outcomes) > 0 {
		outcome = m.Outcomes[0]
		m.Outcomes = m.Outcomes[1:]
	}
	translator := m.Translator
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if outcome != nil {
		return "", outcome
	}
	if translator != nil {
		return translator(text, targetLanguage), nil
	}
	return "[" + targetLanguage + "] " + text, nil
}

// Name implements provider.Provider.
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable implements provider.Provider.
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// Calls returns a copy of the recorded Translate calls.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many times Translate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
