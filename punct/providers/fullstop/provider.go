// Package fullstop provides a punctuation provider backed by the
// fullstop punctuation model family served through the HuggingFace
// Inference API.
//
// The model is a token-classification model: for every word it predicts
// the punctuation mark that should follow it ("0" meaning none). The
// provider rebuilds the chunk from those per-word predictions.
//
// Features:
//   - Works without an API token (at reduced rate limits)
//   - Multilingual (English, German, French, Italian)
//   - Purely additive: never rewords the input
//
// Example usage:
//
//	import (
//	    "github.com/xifan2333/2transcript/punct"
//	    _ "github.com/xifan2333/2transcript/punct/providers/fullstop"
//	)
//
//	r, err := punct.NewRestorer("fullstop", nil)
package fullstop

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xifan2333/2transcript/punct"
)

const (
	defaultBaseURL = "https://api-inference.huggingface.co/models"
	defaultModel   = "oliverguhr/fullstop-punctuation-multilang-large"
)

// Provider implements the punctuation provider interface for the
// fullstop model on the HuggingFace Inference API.
type Provider struct {
	client *http.Client
}

// Ensure Provider implements punct.Provider interface at compile time.
var _ punct.Provider = (*Provider)(nil)

func init() {
	// Register the provider on package initialization.
	punct.Register(New(nil))
}

// New creates a fullstop provider. A nil client selects a default client
// whose timeout allows for model cold starts on the inference API.
func New(client *http.Client) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Provider{client: client}
}

// Name returns the provider's unique identifier.
//
// Returns "fullstop".
func (p *Provider) Name() string {
	return "fullstop"
}

// Restore punctuates a single chunk by querying the token-classification
// endpoint and appending each predicted mark to its word.
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

	reqData, err := json.Marshal(map[string]interface{}{
		"inputs": chunk,
		"options": map[string]bool{
			"wait_for_model": true,
		},
	})
	if err != nil {
		return "", &punct.RestoreError{Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/"+model, bytes.NewReader(reqData))
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

	var entities []entity
	if err := json.NewDecoder(resp.Body).Decode(&entities); err != nil {
		return "", &punct.RestoreError{Message: "failed to decode response", Err: err}
	}

	return rebuild(chunk, entities), nil
}

// entity is one aggregated token-classification prediction: the word,
// its character span in the input, and the punctuation mark predicted to
// follow it ("0" for none).
type entity struct {
	EntityGroup string  `json:"entity_group"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

// rebuild reassembles the chunk from per-word predictions. Words are
// taken from the original input by character span (falling back to the
// model's word string when the span is out of range), so the model
// cannot reword the text even in principle.
func rebuild(chunk string, entities []entity) string {
	if len(entities) == 0 {
		return chunk
	}

	runes := []rune(chunk)
	var b strings.Builder
	b.Grow(len(chunk) + len(entities))

	for _, e := range entities {
		word := e.Word
		if e.Start >= 0 && e.End <= len(runes) && e.Start < e.End {
			word = string(runes[e.Start:e.End])
		}
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
		if e.EntityGroup != "" && e.EntityGroup != "0" {
			b.WriteString(e.EntityGroup)
		}
	}
	return b.String()
}
