// Package openai provides a punctuation provider backed by an
// OpenAI-compatible chat-completions endpoint.
//
// The model is prompted to return the chunk verbatim with punctuation
// restored, which makes any sufficiently capable instruction-following
// model usable as a punctuation model.
//
// Features:
//   - Works with OpenAI and OpenAI-compatible APIs (via Options.BaseURL)
//   - Language-aware system prompt
//   - Deterministic decoding (temperature 0)
//
// Example usage:
//
//	import (
//	    "github.com/xifan2333/2transcript/punct"
//	    _ "github.com/xifan2333/2transcript/punct/providers/openai"
//	)
//
//	opts := &punct.Options{APIKey: "sk-...", Model: "gpt-4o-mini"}
//	r, err := punct.NewRestorer("openai", opts)
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/xifan2333/2transcript/prompt"
	"github.com/xifan2333/2transcript/punct"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// systemPrompt instructs the model to act as a pure punctuation model:
// no rewording, no commentary, text in, punctuated text out.
var systemPrompt = prompt.New(
	"You restore punctuation in raw speech transcripts written in {{ language }}. "+
		"Insert periods, commas, question marks and other punctuation where they belong. "+
		"Do not add, remove, reorder or translate any words. "+
		"Do not add quotes, markdown or commentary. "+
		"Reply with the punctuated text only.",
	prompt.Variable{Name: "language", Required: true, Default: "English"},
)

// Provider implements the punctuation provider interface for
// OpenAI-compatible chat APIs.
type Provider struct {
	client *http.Client
}

// Ensure Provider implements punct.Provider interface at compile time.
var _ punct.Provider = (*Provider)(nil)

func init() {
	// Register the provider on package initialization.
	punct.Register(New(nil))
}

// New creates an OpenAI provider. A nil client selects a default client
// with a generous timeout for long chunks.
func New(client *http.Client) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Provider{client: client}
}

// Name returns the provider's unique identifier.
//
// Returns "openai".
func (p *Provider) Name() string {
	return "openai"
}

// Restore punctuates a single chunk via the chat-completions API.
func (p *Provider) Restore(ctx context.Context, chunk string, opts *punct.Options) (string, error) {
	if opts == nil {
		opts = &punct.Options{}
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}

	system, err := systemPrompt.Render(map[string]string{
		"language": languageName(opts.Language),
	})
	if err != nil {
		return "", &punct.RestoreError{Message: "failed to render system prompt", Err: err}
	}

	reqBody := map[string]interface{}{
		"model":       model,
		"temperature": 0,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": chunk},
		},
	}
	reqData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &punct.RestoreError{Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(reqData))
	if err != nil {
		return "", &punct.RestoreError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+opts.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &punct.RestoreError{Message: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &punct.APIError{StatusCode: resp.StatusCode, Response: string(body)}
	}

	var apiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", &punct.RestoreError{Message: "failed to decode response", Err: err}
	}
	if len(apiResp.Choices) == 0 {
		return "", &punct.RestoreError{Message: "no choices in response"}
	}

	return apiResp.Choices[0].Message.Content, nil
}

// languageName maps the two-letter codes the pipeline works with to the
// names the prompt reads better with. Unknown codes pass through as is.
func languageName(code string) string {
	switch code {
	case "en":
		return "English"
	case "es":
		return "Spanish"
	case "fr":
		return "French"
	case "de":
		return "German"
	default:
		return code
	}
}

// openAIResponse mirrors the chat-completions response shape.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int    `json:"index"`
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
