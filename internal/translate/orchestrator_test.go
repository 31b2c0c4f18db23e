package translate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/pagelingo/internal/align"
	"codeberg.org/snonux/pagelingo/internal/chunk"
	"codeberg.org/snonux/pagelingo/internal/dispatch"
	"codeberg.org/snonux/pagelingo/internal/fragment"
	"codeberg.org/snonux/pagelingo/internal/provider"
	"codeberg.org/snonux/pagelingo/internal/testutil"
)

// noSleep keeps retry backoff out of tests.
func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func TestTranslatePage(t *testing.T) {
	translations := map[string]string{
		"The cat sat.": "El gato se sentó.",
		"The dog ran.": "El perro corrió.",
	}
	p := &testutil.MockProvider{
		ProviderName: "mock",
		Translator: func(text, _ string) string {
			if translated, ok := translations[text]; ok {
				return translated
			}
			t.Errorf("Unexpected chunk text %q", text)
			return text
		},
	}

	o := New([]provider.Provider{p}, &Options{
		MaxChunkChars: 15,
		Dispatch:      &dispatch.Options{Sleep: noSleep},
	})

	fragments := fragment.Capture([]string{"The cat sat.", "The dog ran."})

	instructions, blob, err := o.TranslatePage(context.Background(), fragments, "spanish")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if blob != "El gato se sentó. El perro corrió." {
		t.Errorf("Expected recombined blob, got %q", blob)
	}

	expected := []align.RewriteInstruction{
		{FragmentIndex: 0, NewText: "El gato se sentó."},
		{FragmentIndex: 1, NewText: "El perro corrió."},
	}
	if len(instructions) != len(expected) {
		t.Fatalf("Expected %d instructions, got %d", len(expected), len(instructions))
	}
	for i, want := range expected {
		if instructions[i] != want {
			t.Errorf("Expected instruction %d to be %v, got %v", i, want, instructions[i])
		}
	}
}

func TestTranslatePageUnsupportedLanguage(t *testing.T) {
	p := &testutil.MockProvider{}
	o := New([]provider.Provider{p}, nil)

	_, _, err := o.TranslatePage(context.Background(), fragment.Single("Hello"), "klingon")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("Expected ErrUnsupportedLanguage, got %v", err)
	}
	if p.CallCount() != 0 {
		t.Errorf("Expected no provider calls, got %d", p.CallCount())
	}
}

func TestTranslatePageNoProviderConfigured(t *testing.T) {
	o := New(nil, nil)

	_, _, err := o.TranslatePage(context.Background(), fragment.Single("Hello"), "spanish")
	if !errors.Is(err, ErrNoProviderConfigured) {
		t.Errorf("Expected ErrNoProviderConfigured, got %v", err)
	}
}

func TestTranslatePageEmptyContent(t *testing.T) {
	p := &testutil.MockProvider{}
	o := New([]provider.Provider{p}, nil)

	instructions, blob, err := o.TranslatePage(context.Background(), nil, "spanish")
	if err != nil {
		t.Fatalf("Expected no error for empty input, got %v", err)
	}
	if blob != "" || instructions != nil {
		t.Errorf("Expected empty result, got %q and %v", blob, instructions)
	}
	if p.CallCount() != 0 {
		t.Errorf("Expected no provider calls, got %d", p.CallCount())
	}
}

func TestTranslatePageOrderedUnderConcurrency(t *testing.T) {
	p := &testutil.MockProvider{
		ProviderName: "mock",
		Translator: func(text, _ string) string {
			return strings.ToUpper(text)
		},
	}

	o := New([]provider.Provider{p}, &Options{
		MaxChunkChars: 8,
		Concurrency:   4,
		Dispatch:      &dispatch.Options{Sleep: noSleep},
	})

	texts := []string{"one.", "two.", "three.", "four.", "five.", "six.", "seven.", "eight."}
	fragments := fragment.Capture(texts)

	_, blob, err := o.TranslatePage(context.Background(), fragments, "spanish")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := "ONE. TWO. THREE. FOUR. FIVE. SIX. SEVEN. EIGHT."
	if blob != expected {
		t.Errorf("Expected chunks recombined in order.\nExpected: %q\nGot:      %q", expected, blob)
	}
	if p.CallCount() != len(texts) {
		t.Errorf("Expected %d chunk translations, got %d", len(texts), p.CallCount())
	}
}

func TestTranslatePageFirstFailureFailsJob(t *testing.T) {
	p := &testutil.MockProvider{
		ProviderName: "mock",
		Outcomes: []error{
			&provider.Error{Provider: "mock", Kind: provider.KindNetwork, Message: "down"},
			&provider.Error{Provider: "mock", Kind: provider.KindNetwork, Message: "down"},
			&provider.Error{Provider: "mock", Kind: provider.KindNetwork, Message: "down"},
		},
	}

	o := New([]provider.Provider{p}, &Options{
		MaxChunkChars: 8,
		Concurrency:   1,
		Dispatch:      &dispatch.Options{Sleep: noSleep},
	})

	fragments := fragment.Capture([]string{"one.", "two.", "three."})

	_, _, err := o.TranslatePage(context.Background(), fragments, "spanish")
	if !errors.Is(err, dispatch.ErrAllProvidersExhausted) {
		t.Errorf("Expected ErrAllProvidersExhausted, got %v", err)
	}
}

func TestTranslateRequest(t *testing.T) {
	p := &testutil.MockProvider{
		ProviderName: "mock",
		Translator: func(string, string) string {
			return "Hola mundo."
		},
	}
	o := New([]provider.Provider{p}, &Options{Dispatch: &dispatch.Options{Sleep: noSleep}})

	resp := o.Translate(context.Background(), &Request{
		Content:        "Hello world.",
		TargetLanguage: "Spanish",
	})

	if !resp.Success {
		t.Fatalf("Expected success, got error %q", resp.Error)
	}
	if resp.TranslatedContent != "Hola mundo." {
		t.Errorf("Expected %q, got %q", "Hola mundo.", resp.TranslatedContent)
	}
	if resp.SourceLanguage != "auto" {
		t.Errorf("Expected source language auto, got %q", resp.SourceLanguage)
	}
	if resp.TargetLanguage != "spanish" {
		t.Errorf("Expected normalized target language, got %q", resp.TargetLanguage)
	}
	if resp.Metadata == nil {
		t.Fatal("Expected metadata on success")
	}
	if resp.Metadata.OriginalLength != len("Hello world.") {
		t.Errorf("Expected original length %d, got %d",
			len("Hello world."), resp.Metadata.OriginalLength)
	}
	if resp.Metadata.TranslatedAt == "" {
		t.Error("Expected a translation timestamp")
	}
}

func TestTranslateRequestWithFragments(t *testing.T) {
	p := &testutil.MockProvider{
		ProviderName: "mock",
		Translator: func(string, string) string {
			return "Hola mundo"
		},
	}
	o := New([]provider.Provider{p}, &Options{Dispatch: &dispatch.Options{Sleep: noSleep}})

	resp := o.Translate(context.Background(), &Request{
		TargetLanguage: "spanish",
		Fragments:      []FragmentInput{{Text: "Hello"}, {Text: "world"}},
	})

	if !resp.Success {
		t.Fatalf("Expected success, got error %q", resp.Error)
	}
	if len(resp.RewriteInstructions) != 2 {
		t.Fatalf("Expected 2 rewrite instructions, got %d", len(resp.RewriteInstructions))
	}
	if resp.RewriteInstructions[0].NewText != "Hola" {
		t.Errorf("Expected first instruction Hola, got %q", resp.RewriteInstructions[0].NewText)
	}
}

func TestTranslateRequestFragmentWhitespace(t *testing.T) {
	p := &testutil.MockProvider{
		ProviderName: "mock",
		Translator: func(string, string) string {
			return "Hola mundo"
		},
	}
	o := New([]provider.Provider{p}, &Options{Dispatch: &dispatch.Options{Sleep: noSleep}})

	resp := o.Translate(context.Background(), &Request{
		TargetLanguage: "spanish",
		Fragments: []FragmentInput{
			{Text: "Hello", LeadingWhitespace: "  ", TrailingWhitespace: "\n"},
			{Text: "world"},
		},
	})

	if !resp.Success {
		t.Fatalf("Expected success, got error %q", resp.Error)
	}
	if len(resp.RewriteInstructions) != 2 {
		t.Fatalf("Expected 2 rewrite instructions, got %d", len(resp.RewriteInstructions))
	}
	if resp.RewriteInstructions[0].NewText != "  Hola\n" {
		t.Errorf("Expected caller-supplied whitespace restored, got %q",
			resp.RewriteInstructions[0].NewText)
	}
}

func TestTranslateRequestError(t *testing.T) {
	o := New(nil, nil)

	resp := o.Translate(context.Background(), &Request{
		Content:        "Hello",
		TargetLanguage: "spanish",
	})

	if resp.Success {
		t.Fatal("Expected failure without providers")
	}
	if resp.ErrorKind != "no_provider_configured" {
		t.Errorf("Expected error kind no_provider_configured, got %q", resp.ErrorKind)
	}
	if resp.Error == "" {
		t.Error("Expected an error message")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"unsupported language", ErrUnsupportedLanguage, "unsupported_language"},
		{"no provider", ErrNoProviderConfigured, "no_provider_configured"},
		{"exhausted", dispatch.ErrAllProvidersExhausted, "all_providers_exhausted"},
		{"incomplete", chunk.ErrIncompleteResults, "incomplete_results"},
		{"provider kind", &provider.Error{Kind: provider.KindRateLimited}, "rate_limited"},
		{"plain", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
