package provider

import (
	"context"
	"time"
)

// Provider defines the interface for translation services
type Provider interface {
	// Translate translates one chunk of text into the target language.
	// targetLanguage is a supported language name, e.g. "spanish".
	Translate(ctx context.Context, text, targetLanguage string) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Result is one successful chunk translation.
type Result struct {
	ChunkID        int
	TranslatedText string
	// Provider is the name of the provider that produced the text.
	Provider string
}

// Config holds common configuration for translation providers
type Config struct {
	// Gemini settings (primary provider)
	GeminiKey   string
	GeminiModel string // e.g. "gemini-1.5-flash"

	// OpenAI settings (alternate generative provider)
	OpenAIKey   string
	OpenAIModel string // e.g. "gpt-4o-mini"

	// HuggingFace settings (specialized MT fallback)
	HuggingFaceToken string
	HuggingFaceURL   string // inference API base URL, overridable for tests

	// Timeout applies to each individual provider call.
	Timeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		GeminiModel:    "gemini-1.5-flash",
		OpenAIModel:    "gpt-4o-mini",
		HuggingFaceURL: huggingFaceAPIURL,
		Timeout:        30 * time.Second,
	}
}

// NewProviders creates the configured providers in priority order:
// generative providers first (Gemini, then OpenAI), the specialized
// machine-translation fallback last. Providers without credentials are
// omitted; an empty slice means no provider is configured.
func NewProviders(ctx context.Context, config *Config) ([]Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var providers []Provider

	if config.GeminiKey != "" {
		gemini, err := NewGeminiProvider(ctx, config)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gemini)
	}

	if config.OpenAIKey != "" {
		providers = append(providers, NewOpenAIProvider(config))
	}

	if config.HuggingFaceToken != "" {
		providers = append(providers, NewHuggingFaceProvider(config))
	}

	return providers, nil
}
