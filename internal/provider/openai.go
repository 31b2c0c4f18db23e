package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI chat completions. It
// serves as an alternate generative provider when a Gemini key is not
// configured.
type OpenAIProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI translation provider
func NewOpenAIProvider(config *Config) *OpenAIProvider {
	model := config.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIProvider{
		apiKey: config.OpenAIKey,
		model:  model,
		client: openai.NewClient(config.OpenAIKey),
	}
}

// Translate translates text using a chat completion request.
func (p *OpenAIProvider) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if p.apiKey == "" {
		return "", &Error{Provider: p.Name(), Kind: KindUnauthenticated,
			Message: "OpenAI API key not found"}
	}

	lang, ok := LookupLanguage(targetLanguage)
	if !ok {
		return "", &Error{Provider: p.Name(), Kind: KindOther,
			Message: fmt.Sprintf("unsupported language %q", targetLanguage)}
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the following text to %s. "+
					"Respond with only the translation, nothing else.\n\n%s", lang.Name, text),
			},
		},
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", p.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Provider: p.Name(), Kind: KindOther, Message: "no translation returned"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// classify converts a go-openai error into a classified provider error.
func (p *OpenAIProvider) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Provider: p.Name(), Kind: KindNetwork, Message: err.Error()}
	}

	apiErr := &openai.APIError{}
	if errors.As(err, &apiErr) {
		return &Error{Provider: p.Name(), Kind: kindOfStatus(apiErr.HTTPStatusCode),
			Message: apiErr.Message}
	}

	return &Error{Provider: p.Name(), Kind: KindNetwork,
		Message: fmt.Sprintf("OpenAI API error: %v", err)}
}
