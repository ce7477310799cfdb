package punct

import (
	"context"
	"regexp"
	"strings"

	"github.com/xifan2333/2transcript/transcript"
)

// hashPeriodPattern matches a period the model inserted directly after
// markdown hashes, which would break a heading.
var hashPeriodPattern = regexp.MustCompile(`(##?)\.`)

// Restorer runs the full punctuation-restoration stage: chunking,
// per-chunk model invocation, reassembly, and sentence capitalization.
type Restorer struct {
	provider Provider
	opts     *Options

	// MaxChunkLen is the per-chunk rune budget passed to the model.
	// Zero selects DefaultMaxChunkLen.
	MaxChunkLen int
}

// NewRestorer resolves a provider from the global registry and builds a
// Restorer around it.
func NewRestorer(providerName string, opts *Options) (*Restorer, error) {
	provider, err := Get(providerName)
	if err != nil {
		return nil, err
	}
	return NewRestorerWith(provider, opts)
}

// NewRestorerWith builds a Restorer around an explicit provider. This is
// the injection seam for tests and for callers managing their own
// provider instances.
func NewRestorerWith(provider Provider, opts *Options) (*Restorer, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Restorer{provider: provider, opts: opts}, nil
}

// Provider returns the wrapped provider.
func (r *Restorer) Provider() Provider {
	return r.provider
}

// Restore punctuates text and capitalizes sentence-initial letters.
//
// Empty (or whitespace-only) input passes through unchanged without a
// model call. Text exceeding the chunk budget is split at whitespace
// boundaries, restored chunk by chunk, and rejoined with single spaces;
// punctuation at chunk boundaries is best-effort since the model sees no
// cross-chunk context.
//
// Any provider failure is returned as a *ModelUnavailableError so the
// caller can degrade to the unpunctuated text instead of aborting.
func (r *Restorer) Restore(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	chunks := splitChunks(text, r.MaxChunkLen)
	restored := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := r.provider.Restore(ctx, chunk, r.opts)
		if err != nil {
			return "", &ModelUnavailableError{Provider: r.provider.Name(), Err: err}
		}
		out = strings.TrimSpace(out)
		if out != "" {
			restored = append(restored, out)
		}
	}

	result := strings.Join(restored, " ")

	// The model occasionally punctuates a markdown hash as if it were a
	// word; strip those periods before capitalizing.
	result = hashPeriodPattern.ReplaceAllString(result, "$1")

	return transcript.CapitalizeSentences(result), nil
}
