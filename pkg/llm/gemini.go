package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiProvider calls the Google Gemini API through the official client.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider. An empty model selects the
// default.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (provider *GeminiProvider, err error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	var client *genai.Client
	client, err = genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		err = errors.Wrap(err, "failed to create Gemini client")
		return provider, err
	}

	provider = &GeminiProvider{
		client: client,
		model:  model,
	}

	return provider, err
}

// Name identifies the provider.
func (p *GeminiProvider) Name() (name string) {
	name = string(KindGemini)
	return name
}

// Generate produces text for the prompt. Blocked candidates are turned
// into errors naming the finish reason so the retry loop and the final
// error message can react to them.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error) {
	model := p.client.GenerativeModel(p.model)
	model.SetMaxOutputTokens(int32(maxTokens)) //nolint:gosec // Token counts are small
	model.SetTemperature(float32(temperature))
	model.SetTopP(0.8)
	model.SetTopK(40)

	var resp *genai.GenerateContentResponse
	resp, err = model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		err = errors.Wrap(err, "failed to generate content")
		return text, err
	}

	text, err = extractGeminiText(resp)

	return text, err
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() (err error) {
	if p.client != nil {
		err = p.client.Close()
	}
	return err
}

func extractGeminiText(resp *genai.GenerateContentResponse) (text string, err error) {
	if resp == nil || len(resp.Candidates) == 0 {
		err = errors.New("no candidates in response")
		return text, err
	}

	candidate := resp.Candidates[0]

	if candidate.Content != nil {
		var parts []string
		for _, part := range candidate.Content.Parts {
			if textPart, ok := part.(genai.Text); ok && string(textPart) != "" {
				parts = append(parts, string(textPart))
			}
		}
		if len(parts) > 0 {
			text = strings.TrimSpace(strings.Join(parts, " "))
			return text, err
		}
	}

	switch candidate.FinishReason {
	case genai.FinishReasonSafety:
		err = errors.New("content blocked by safety filter")
	case genai.FinishReasonRecitation:
		err = errors.New("content blocked due to recitation detection")
	case genai.FinishReasonOther:
		err = errors.New("generation stopped for an unspecified reason")
	default:
		err = errors.New("no content generated - empty response")
	}

	return text, err
}
