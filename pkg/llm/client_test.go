package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// stubProvider records the parameters of each Generate call and fails a
// configured number of times before succeeding.
type stubProvider struct {
	name         string
	failures     int
	failWith     error
	calls        int
	temperatures []float64
}

func (s *stubProvider) Name() (name string) {
	name = s.name
	return name
}

func (s *stubProvider) Generate(_ context.Context, _ string, _ int, temperature float64) (text string, err error) {
	s.calls++
	s.temperatures = append(s.temperatures, temperature)
	if s.calls <= s.failures {
		err = s.failWith
		return text, err
	}
	text = "Dear Hiring Manager, ..."
	return text, err
}

func TestGenerateSucceedsFirstAttempt(t *testing.T) {
	provider := &stubProvider{name: "openai"}
	client := NewClientWithProvider(provider, 2)

	text, err := client.Generate(context.Background(), "prompt", 3000, 0.7)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if text == "" {
		t.Error("Expected generated text")
	}

	if provider.calls != 1 {
		t.Errorf("Expected 1 call, got %d", provider.calls)
	}
}

func TestGenerateRetriesWithLowerTemperature(t *testing.T) {
	provider := &stubProvider{
		name:     "openai",
		failures: 2,
		failWith: errors.New("content blocked by safety filter"),
	}
	client := NewClientWithProvider(provider, 2)

	text, err := client.Generate(context.Background(), "prompt", 3000, 0.7)
	if err != nil {
		t.Fatalf("Generate failed after retries: %v", err)
	}

	if text == "" {
		t.Error("Expected generated text")
	}

	if provider.calls != 3 {
		t.Fatalf("Expected 3 calls, got %d", provider.calls)
	}

	// Each failed attempt lowers the temperature by 0.1.
	expected := []float64{0.7, 0.6, 0.5}
	for i, temp := range provider.temperatures {
		if temp < expected[i]-0.001 || temp > expected[i]+0.001 {
			t.Errorf("Attempt %d: expected temperature %.1f, got %.2f", i+1, expected[i], temp)
		}
	}
}

func TestGenerateTemperatureFloor(t *testing.T) {
	provider := &stubProvider{
		name:     "openai",
		failures: 5,
		failWith: errors.New("bad response"),
	}
	client := NewClientWithProvider(provider, 5)

	_, err := client.Generate(context.Background(), "prompt", 3000, 0.2)
	if err != nil {
		t.Fatalf("Generate failed after retries: %v", err)
	}

	for i, temp := range provider.temperatures {
		if temp < MinTemperature-0.001 {
			t.Errorf("Attempt %d: temperature %.2f below floor %.1f", i+1, temp, MinTemperature)
		}
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	provider := &stubProvider{
		name:     "anthropic",
		failures: 10,
		failWith: errors.New("bad response"),
	}
	client := NewClientWithProvider(provider, 2)

	_, err := client.Generate(context.Background(), "prompt", 3000, 0.7)
	if err == nil {
		t.Fatal("Expected error after exhausting retries, got nil")
	}

	if !errors.Is(err, ErrGeneration) {
		t.Errorf("Expected ErrGeneration, got %v", err)
	}

	// 1 initial attempt + 2 retries.
	if provider.calls != 3 {
		t.Errorf("Expected 3 calls, got %d", provider.calls)
	}

	if !strings.Contains(err.Error(), "anthropic") {
		t.Errorf("Expected provider named in error, got '%s'", err.Error())
	}
}

func TestGenerateGeminiSafetyGuidance(t *testing.T) {
	provider := &stubProvider{
		name:     "gemini",
		failures: 10,
		failWith: errors.New("content blocked by safety filter"),
	}
	client := NewClientWithProvider(provider, 1)

	_, err := client.Generate(context.Background(), "prompt", 3000, 0.7)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if !strings.Contains(err.Error(), "switch providers") {
		t.Errorf("Expected provider-switch guidance for Gemini safety blocks, got '%s'", err.Error())
	}
}

func TestGenerateNoGuidanceForOtherProviders(t *testing.T) {
	provider := &stubProvider{
		name:     "openai",
		failures: 10,
		failWith: errors.New("content blocked by filter"),
	}
	client := NewClientWithProvider(provider, 1)

	_, err := client.Generate(context.Background(), "prompt", 3000, 0.7)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if strings.Contains(err.Error(), "switch providers") {
		t.Errorf("Guidance should be Gemini-specific, got '%s'", err.Error())
	}
}

func TestGenerateContextCancelled(t *testing.T) {
	provider := &stubProvider{
		name:     "openai",
		failures: 10,
		failWith: errors.New("connection refused"),
	}
	client := NewClientWithProvider(provider, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "prompt", 3000, 0.7)
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}

	// The first attempt runs; the backoff select then observes cancellation.
	if provider.calls > 1 {
		t.Errorf("Expected no retries after cancellation, got %d calls", provider.calls)
	}
}

func TestNewClientWithProviderDefaultRetries(t *testing.T) {
	client := NewClientWithProvider(&stubProvider{name: "openai"}, -1)

	if client.retries != DefaultRetries {
		t.Errorf("Expected default retries %d, got %d", DefaultRetries, client.retries)
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		expected ProviderKind
	}{
		{
			name:     "gpt model",
			model:    "gpt-4o-mini",
			expected: KindOpenAI,
		},
		{
			name:     "openai in name",
			model:    "openai-custom",
			expected: KindOpenAI,
		},
		{
			name:     "gemini model",
			model:    "gemini-1.5-flash",
			expected: KindGemini,
		},
		{
			name:     "google in name",
			model:    "google-bison",
			expected: KindGemini,
		},
		{
			name:     "claude model",
			model:    "claude-sonnet-4-20250514",
			expected: KindAnthropic,
		},
		{
			name:     "anthropic in name",
			model:    "anthropic-haiku",
			expected: KindAnthropic,
		},
		{
			name:     "mixed case",
			model:    "Claude-Opus",
			expected: KindAnthropic,
		},
		{
			name:     "unknown defaults to openai",
			model:    "mystery-model-9000",
			expected: KindOpenAI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectKind(tt.model)
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestShouldBackoff(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "rate limited",
			err:      errors.New("API request failed with status 429: slow down"),
			expected: true,
		},
		{
			name:     "server error",
			err:      errors.New("API request failed with status 503: unavailable"),
			expected: true,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp: connection refused"),
			expected: true,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: true,
		},
		{
			name:     "content failure retries immediately",
			err:      errors.New("content blocked by safety filter"),
			expected: false,
		},
		{
			name:     "bad request does not back off",
			err:      errors.New("API request failed with status 400: bad request"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shouldBackoff(tt.err)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
