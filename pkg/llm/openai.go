package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// OpenAIAPIEndpoint is the OpenAI chat completions endpoint.
	OpenAIAPIEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIChoice struct {
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
}

// NewOpenAIProvider creates an OpenAI provider. An empty model selects
// the default.
func NewOpenAIProvider(apiKey, model string) (provider *OpenAIProvider) {
	if model == "" {
		model = DefaultOpenAIModel
	}
	provider = &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: OpenAIAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return provider
}

// Name identifies the provider.
func (p *OpenAIProvider) Name() (name string) {
	name = string(KindOpenAI)
	return name
}

// Generate sends a single-message chat completion request and returns the
// first choice's content.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error) {
	request := openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var reqBody []byte
	reqBody, err = json.Marshal(request)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	var resp *http.Response
	resp, err = p.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return text, err
	}

	var response openAIResponse
	err = json.Unmarshal(respBody, &response)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse response: %s", string(respBody))
		return text, err
	}

	if len(response.Choices) == 0 {
		err = errors.New("no choices in response")
		return text, err
	}

	choice := response.Choices[0]
	if choice.FinishReason == "content_filter" {
		err = errors.New("content blocked by OpenAI content filter")
		return text, err
	}

	text = strings.TrimSpace(choice.Message.Content)
	if text == "" {
		err = errors.New("empty completion in response")
		return text, err
	}

	return text, err
}
