package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const huggingFaceAPIURL = "https://api-inference.huggingface.co/models"

// HuggingFaceProvider implements Provider using the Helsinki-NLP
// opus-mt machine-translation models on the HuggingFace inference API.
// It is the fallback provider; a cold model needs a warm-up period of
// up to about a minute, signaled by a distinct model-loading response.
type HuggingFaceProvider struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// hfRequest is the inference API request body.
type hfRequest struct {
	Inputs string `json:"inputs"`
}

// hfTranslation is one element of a successful inference response.
type hfTranslation struct {
	TranslationText string `json:"translation_text"`
}

// hfError is the inference API error body. EstimatedTime is only set on
// model-loading responses.
type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// NewHuggingFaceProvider creates a new HuggingFace translation provider
func NewHuggingFaceProvider(config *Config) *HuggingFaceProvider {
	baseURL := config.HuggingFaceURL
	if baseURL == "" {
		baseURL = huggingFaceAPIURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HuggingFaceProvider{
		token:   config.HuggingFaceToken,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Translate translates text using the opus-mt model for the target
// language.
func (p *HuggingFaceProvider) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if p.token == "" {
		return "", &Error{Provider: p.Name(), Kind: KindUnauthenticated,
			Message: "HuggingFace API token not found"}
	}

	lang, ok := LookupLanguage(targetLanguage)
	if !ok {
		return "", &Error{Provider: p.Name(), Kind: KindOther,
			Message: fmt.Sprintf("unsupported language %q", targetLanguage)}
	}

	body, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return "", &Error{Provider: p.Name(), Kind: KindOther,
			Message: fmt.Sprintf("failed to encode request: %v", err)}
	}

	reqURL := fmt.Sprintf("%s/Helsinki-NLP/opus-mt-en-%s", p.baseURL, lang.Code)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Provider: p.Name(), Kind: KindOther,
			Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &Error{Provider: p.Name(), Kind: KindNetwork,
			Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", p.classifyResponse(resp)
	}

	var translations []hfTranslation
	if err := json.NewDecoder(resp.Body).Decode(&translations); err != nil {
		return "", &Error{Provider: p.Name(), Kind: KindOther,
			Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if len(translations) == 0 || strings.TrimSpace(translations[0].TranslationText) == "" {
		return "", &Error{Provider: p.Name(), Kind: KindOther, Message: "no translation returned"}
	}

	return strings.TrimSpace(translations[0].TranslationText), nil
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// IsAvailable checks if the HuggingFace API is accessible
func (p *HuggingFaceProvider) IsAvailable() error {
	if p.token == "" {
		return fmt.Errorf("HuggingFace API token not configured")
	}
	return nil
}

// classifyResponse converts a non-200 inference API response into a
// classified provider error. A 503 with an estimated_time body is the
// model warm-up signal and maps to KindModelLoading.
func (p *HuggingFaceProvider) classifyResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var hfErr hfError
	_ = json.Unmarshal(body, &hfErr)

	if resp.StatusCode == http.StatusServiceUnavailable && hfErr.EstimatedTime > 0 {
		return &Error{
			Provider:   p.Name(),
			Kind:       KindModelLoading,
			Message:    hfErr.Error,
			RetryAfter: time.Duration(hfErr.EstimatedTime * float64(time.Second)),
		}
	}

	message := hfErr.Error
	if message == "" {
		message = fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return &Error{Provider: p.Name(), Kind: kindOfStatus(resp.StatusCode), Message: message}
}
