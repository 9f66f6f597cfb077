package llm

import (
	"context"
	"io"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultRetries is the number of retries after a failed generation
	// attempt.
	DefaultRetries = 2
	// MinTemperature is the floor the retry loop lowers temperature to.
	MinTemperature = 0.1

	retryBaseDelay = 300 * time.Millisecond
)

// ErrGeneration indicates all generation attempts failed.
var ErrGeneration = errors.New("text generation failed")

// ProviderConfig selects and configures the LLM backend. An explicit Kind
// wins; when empty, the provider is inferred from the model name.
type ProviderConfig struct {
	Kind   ProviderKind
	APIKey string
	Model  string
}

// Client generates text through a provider, retrying failed attempts with
// progressively lower temperature.
type Client struct {
	provider Provider
	retries  int
}

// NewClient builds a client for the configured provider.
func NewClient(ctx context.Context, cfg ProviderConfig, retries int) (client *Client, err error) {
	if cfg.APIKey == "" {
		err = errors.New("API key is required")
		return client, err
	}

	kind := cfg.Kind
	if kind == "" {
		kind = DetectKind(cfg.Model)
	}

	var provider Provider
	switch kind {
	case KindOpenAI:
		provider = NewOpenAIProvider(cfg.APIKey, cfg.Model)
	case KindGemini:
		provider, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			err = errors.Wrap(err, "failed to initialize Gemini provider")
			return client, err
		}
	case KindAnthropic:
		provider = NewAnthropicProvider(cfg.APIKey, cfg.Model)
	default:
		err = errors.Errorf("unsupported provider: %s", kind)
		return client, err
	}

	client = NewClientWithProvider(provider, retries)

	return client, err
}

// NewClientWithProvider wraps an existing provider. Negative retries
// selects the default.
func NewClientWithProvider(provider Provider, retries int) (client *Client) {
	if retries < 0 {
		retries = DefaultRetries
	}
	client = &Client{
		provider: provider,
		retries:  retries,
	}
	return client
}

// Generate produces text for the prompt. Each failed attempt lowers the
// temperature by 0.1 down to the floor before retrying; network-shaped
// failures additionally back off briefly. The final error names the
// provider and, for Gemini safety blocks, suggests switching providers.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 && shouldBackoff(lastErr) {
			select {
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				err = ctx.Err()
				return text, err
			}
		}

		text, lastErr = c.provider.Generate(ctx, prompt, maxTokens, temperature)
		if lastErr == nil {
			return text, err
		}

		if ctx.Err() != nil {
			break
		}

		// Lower the temperature for the next attempt. Failures are often
		// content-shaped; a more conservative sample may pass.
		temperature = temperature - 0.1
		if temperature < MinTemperature {
			temperature = MinTemperature
		}
	}

	err = errors.Wrapf(ErrGeneration, "%s: %v", c.provider.Name(), lastErr)

	if c.provider.Name() == string(KindGemini) && isSafetyBlock(lastErr) {
		err = errors.Wrap(err, "Gemini has strict safety filters; try more neutral language or switch providers (e.g. LLM_MODEL=gpt-4o-mini)")
	}

	return text, err
}

// Close releases provider resources for providers that hold any.
func (c *Client) Close() (err error) {
	if closer, ok := c.provider.(io.Closer); ok {
		err = closer.Close()
	}
	return err
}

// shouldBackoff reports whether the error looks like a transient network
// or server failure worth a delay before retrying. Content-shaped failures
// retry immediately with adjusted parameters instead.
func shouldBackoff(err error) (backoff bool) {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range []string{
		"status 429",
		"status 5",
		"timeout",
		"connection reset",
		"connection refused",
		"connection closed",
		"broken pipe",
		"tls handshake",
		"eof",
	} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return false
}

func isSafetyBlock(err error) (blocked bool) {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	blocked = strings.Contains(msg, "safety") || strings.Contains(msg, "blocked")
	return blocked
}
