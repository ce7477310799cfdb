// Package punct restores punctuation and capitalization in raw,
// unpunctuated transcript text.
//
// The character-level punctuation decision is delegated to an external
// pre-trained model behind the Provider interface; this package owns only
// the orchestration around it: chunking input that exceeds the model's
// length limit, reassembling chunk outputs in order, and the sentence
// capitalization post-pass.
//
// Example usage:
//
//	import (
//	    "context"
//	    "github.com/xifan2333/2transcript/punct"
//	    _ "github.com/xifan2333/2transcript/punct/providers/fullstop"
//	)
//
//	r, err := punct.NewRestorer("fullstop", &punct.Options{Language: "en"})
//	if err != nil {
//	    panic(err)
//	}
//	restored, err := r.Restore(ctx, "hello world how are you")
package punct

import "context"

// Provider defines the interface that all punctuation-model providers
// must implement.
//
// A provider receives one bounded-length chunk of unpunctuated text and
// returns the same text with punctuation marks inserted. Chunking and
// capitalization are handled by the Restorer, not by providers.
//
// Providers must be registered using the Register function, typically in
// their init() function.
type Provider interface {
	// Name returns the provider's unique identifier.
	//
	// Examples: "openai", "fullstop"
	Name() string

	// Restore punctuates a single text chunk.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - chunk: Raw unpunctuated text, within the model's length limit
	//   - opts: Provider options (validated by the caller)
	//
	// The returned text must preserve the chunk's words in order;
	// only punctuation marks and surrounding spacing may change.
	Restore(ctx context.Context, chunk string, opts *Options) (string, error)
}

// Options contains unified options for punctuation providers.
//
// The options work across all providers, though a provider may ignore
// fields that do not apply to its model.
type Options struct {
	// BaseURL is the inference endpoint base URL.
	// If not specified, the provider's default URL will be used.
	BaseURL string

	// APIKey authenticates against the inference endpoint.
	// Some providers work without one (at reduced rate limits).
	APIKey string

	// Model is the model identifier to use.
	// If not specified, the provider's default model will be used.
	Model string

	// Language is the language of the text being restored, as a
	// two-letter code. Default: "en".
	Language string
}

// Validate validates the options and sets default values.
func (o *Options) Validate() error {
	if o.Language == "" {
		o.Language = "en"
	}
	return nil
}
