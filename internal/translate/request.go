package translate

import (
	"context"
	"errors"
	"strings"
	"time"

	"codeberg.org/snonux/pagelingo/internal/align"
	"codeberg.org/snonux/pagelingo/internal/chunk"
	"codeberg.org/snonux/pagelingo/internal/dispatch"
	"codeberg.org/snonux/pagelingo/internal/fragment"
	"codeberg.org/snonux/pagelingo/internal/provider"
)

// Request is the inbound translation request from the presentation
// layer. When Fragments is empty the content is treated as a single
// fragment.
type Request struct {
	Content        string          `json:"content"`
	TargetLanguage string          `json:"target_language"`
	Fragments      []FragmentInput `json:"fragments,omitempty"`
	PageInfo       *PageInfo       `json:"page_info,omitempty"`
}

// FragmentInput is one caller-supplied fragment boundary. The optional
// whitespace fields let the extension send pre-trimmed node text while
// keeping the surrounding whitespace restorable.
type FragmentInput struct {
	Text               string `json:"text"`
	LeadingWhitespace  string `json:"leading_whitespace,omitempty"`
	TrailingWhitespace string `json:"trailing_whitespace,omitempty"`
}

// PageInfo carries optional source-page metadata, used for logging only.
type PageInfo struct {
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
}

// Response is the outbound result shape.
type Response struct {
	Success             bool                       `json:"success"`
	TranslatedContent   string                     `json:"translated_content,omitempty"`
	RewriteInstructions []align.RewriteInstruction `json:"rewrite_instructions,omitempty"`
	SourceLanguage      string                     `json:"source_language,omitempty"`
	TargetLanguage      string                     `json:"target_language,omitempty"`
	Metadata            *Metadata                  `json:"metadata,omitempty"`
	Error               string                     `json:"error,omitempty"`
	ErrorKind           string                     `json:"error_kind,omitempty"`
}

// Metadata describes a successful translation.
type Metadata struct {
	OriginalLength   int    `json:"original_length"`
	TranslatedLength int    `json:"translated_length"`
	TranslatedAt     string `json:"translated_at"`
}

// Translate runs the pipeline for an inbound request and maps the
// outcome onto the outbound response shape. Source language is always
// reported as "auto"; the providers detect it themselves.
func (o *Orchestrator) Translate(ctx context.Context, req *Request) *Response {
	var fragments []fragment.TextFragment
	if len(req.Fragments) > 0 {
		texts := make([]string, 0, len(req.Fragments))
		for _, f := range req.Fragments {
			texts = append(texts, f.LeadingWhitespace+f.Text+f.TrailingWhitespace)
		}
		fragments = fragment.Capture(texts)
	} else {
		fragments = fragment.Single(req.Content)
	}

	instructions, blob, err := o.TranslatePage(ctx, fragments, req.TargetLanguage)
	if err != nil {
		return &Response{
			Success:        false,
			TargetLanguage: req.TargetLanguage,
			Error:          err.Error(),
			ErrorKind:      ErrorKind(err),
		}
	}

	return &Response{
		Success:             true,
		TranslatedContent:   blob,
		RewriteInstructions: instructions,
		SourceLanguage:      "auto",
		TargetLanguage:      strings.ToLower(strings.TrimSpace(req.TargetLanguage)),
		Metadata: &Metadata{
			OriginalLength:   len(req.Content),
			TranslatedLength: len(blob),
			TranslatedAt:     time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// ErrorKind maps a pipeline error onto its wire kind string.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedLanguage):
		return "unsupported_language"
	case errors.Is(err, ErrNoProviderConfigured):
		return "no_provider_configured"
	case errors.Is(err, dispatch.ErrAllProvidersExhausted):
		return "all_providers_exhausted"
	case errors.Is(err, chunk.ErrIncompleteResults):
		return "incomplete_results"
	default:
		if kind := provider.KindOf(err); kind != provider.KindOther {
			return kind.String()
		}
		return "other"
	}
}
