package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Gemini generative API.
// It is the primary provider: fast and typically succeeds in one round
// trip.
type GeminiProvider struct {
	client *genai.Client
	model  string
	apiKey string
}

// NewGeminiProvider creates a new Gemini translation provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		apiKey: config.GeminiKey,
	}, nil
}

// Translate translates text using a Gemini generation request.
func (p *GeminiProvider) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	lang, ok := LookupLanguage(targetLanguage)
	if !ok {
		return "", &Error{Provider: p.Name(), Kind: KindOther,
			Message: fmt.Sprintf("unsupported language %q", targetLanguage)}
	}

	prompt := fmt.Sprintf("Translate the following text to %s. "+
		"Provide only the translation without any additional text or explanations.\n\n"+
		"Text to translate:\n%s\n\nTranslation:", lang.Name, text)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.3),
		})
	if err != nil {
		return "", p.classify(err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", &Error{Provider: p.Name(), Kind: KindOther, Message: "no translation returned"}
	}

	return translated, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the Gemini API is accessible
func (p *GeminiProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}

// classify converts a Gemini SDK error into a classified provider error.
func (p *GeminiProvider) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Provider: p.Name(), Kind: KindNetwork, Message: err.Error()}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Provider: p.Name(), Kind: kindOfStatus(apiErr.Code), Message: apiErr.Message}
	}

	return &Error{Provider: p.Name(), Kind: KindNetwork,
		Message: fmt.Sprintf("Gemini API error: %v", err)}
}
