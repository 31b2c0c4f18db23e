// Package provider implements the external translation services behind
// a common interface. The Gemini and OpenAI providers call generative
// APIs with a translation prompt; the HuggingFace provider calls the
// Helsinki-NLP opus-mt machine-translation models, which may need a
// warm-up period on first use. All failures carry a Kind so the
// dispatcher can decide between retrying, backing off and escalating to
// the next provider.
package provider
