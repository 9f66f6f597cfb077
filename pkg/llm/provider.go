// Package llm generates cover letter text through one of several hosted
// language model providers, with retry on transient failures.
package llm

import (
	"context"
	"strings"
)

// ProviderKind identifies a supported LLM provider.
type ProviderKind string

const (
	// KindOpenAI selects the OpenAI chat completions API.
	KindOpenAI ProviderKind = "openai"
	// KindGemini selects the Google Gemini API.
	KindGemini ProviderKind = "gemini"
	// KindAnthropic selects the Anthropic messages API.
	KindAnthropic ProviderKind = "anthropic"
)

// Provider is a single LLM backend. Implementations are stateless apart
// from their API credentials and HTTP clients.
type Provider interface {
	// Name identifies the provider in error messages and logs.
	Name() (name string)
	// Generate produces text for the prompt with the given sampling
	// parameters.
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error)
}

// DetectKind infers the provider from a model name by substring match,
// defaulting to OpenAI for unrecognized models.
func DetectKind(model string) (kind ProviderKind) {
	lower := strings.ToLower(model)

	switch {
	case strings.Contains(lower, "gpt") || strings.Contains(lower, "openai"):
		kind = KindOpenAI
	case strings.Contains(lower, "gemini") || strings.Contains(lower, "google"):
		kind = KindGemini
	case strings.Contains(lower, "claude") || strings.Contains(lower, "anthropic"):
		kind = KindAnthropic
	default:
		kind = KindOpenAI
	}

	return kind
}
