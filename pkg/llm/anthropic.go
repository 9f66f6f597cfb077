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
	// AnthropicAPIEndpoint is the Anthropic messages API endpoint.
	AnthropicAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// AnthropicAPIVersion is the API version header value.
	AnthropicAPIVersion = "2023-06-01"
	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

// AnthropicProvider calls the Anthropic messages API.
type AnthropicProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	ID      string             `json:"id"`
	Type    string             `json:"type"`
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
	Model   string             `json:"model"`
}

// NewAnthropicProvider creates an Anthropic provider. An empty model
// selects the default.
func NewAnthropicProvider(apiKey, model string) (provider *AnthropicProvider) {
	if model == "" {
		model = DefaultAnthropicModel
	}
	provider = &AnthropicProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: AnthropicAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return provider
}

// Name identifies the provider.
func (p *AnthropicProvider) Name() (name string) {
	name = string(KindAnthropic)
	return name
}

// Generate sends a single-message request and returns the first text block.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (text string, err error) {
	request := anthropicRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
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
	httpReq.Header.Set("X-Api-Key", p.apiKey)
	httpReq.Header.Set("Anthropic-Version", AnthropicAPIVersion)

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

	var response anthropicResponse
	err = json.Unmarshal(respBody, &response)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse response: %s", string(respBody))
		return text, err
	}

	if len(response.Content) == 0 {
		err = errors.New("no content in response")
		return text, err
	}

	text = strings.TrimSpace(response.Content[0].Text)

	return text, err
}
