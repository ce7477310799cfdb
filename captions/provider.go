// Package captions provides a unified interface for caption-track providers.
//
// A provider knows how to retrieve the subtitle track of a video from some
// captioning service and return it in a standardized format. All providers
// return results as an ordered sequence of timed fragments, making it easy
// to switch between providers or stub them out in tests.
//
// Example usage:
//
//	import (
//	    "context"
//	    "github.com/xifan2333/2transcript/captions"
//	    _ "github.com/xifan2333/2transcript/captions/providers/youtube"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    track, err := captions.Fetch(ctx, "youtube", "dQw4w9WgXcQ", nil)
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(len(track.Fragments))
//	}
package captions

import "context"

// Provider defines the interface that all caption providers must implement.
//
// A provider is responsible for:
//   - Locating the caption track of a video on the captioning service
//   - Converting it to the standardized Track format
//
// Providers must be registered using the Register function, typically in
// their init() function.
type Provider interface {
	// Name returns the provider's unique identifier.
	// This name is used when calling Get() or Fetch().
	//
	// Example: "youtube"
	Name() string

	// Fetch retrieves the caption track for a video.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - videoID: The service-specific video identifier
	//   - opts: Fetch options (nil for defaults)
	//
	// Fetch performs a single attempt; it does not retry. Use Fetcher for
	// retry-protected fetching. Errors must use the types in errors.go so
	// callers can distinguish permanent failures from transient ones.
	Fetch(ctx context.Context, videoID string, opts *FetchOptions) (*Track, error)
}

// FetchOptions contains unified options for caption fetching.
//
// The options work across all providers, though a provider may ignore
// fields that do not apply to its service.
type FetchOptions struct {
	// Language is the preferred caption language code (e.g. "en", "es").
	// Providers fall back to an English track, then to the first available
	// track, when the preferred language is not offered.
	// Default: "en".
	Language string
}

// Validate validates the options and sets default values.
func (o *FetchOptions) Validate() error {
	if o.Language == "" {
		o.Language = "en"
	}
	return nil
}

// Track represents the standardized caption track of a single video.
//
// All providers must convert their responses to this format.
type Track struct {
	// VideoID is the identifier the track was fetched for.
	VideoID string `json:"video_id"`

	// Title is the video title, when the service exposes it.
	// May be empty; callers needing a display name should fall back
	// to VideoID.
	Title string `json:"title,omitempty"`

	// Language is the language code of the selected track, which may
	// differ from the requested language when a fallback was used.
	Language string `json:"language,omitempty"`

	// Generated reports whether the track was machine-generated (ASR)
	// rather than uploaded by the video author.
	Generated bool `json:"generated,omitempty"`

	// Fragments holds the timed caption units in temporal order.
	// Ordering is significant and must be preserved by consumers.
	Fragments []Fragment `json:"fragments"`
}

// Fragment is one timed unit of raw caption text.
type Fragment struct {
	// Text is the raw fragment text. It may contain inline cues such as
	// "[Music]"; cleanup is the assembler's job, not the provider's.
	Text string `json:"text"`

	// Start is the fragment start time in seconds from the video start.
	Start float64 `json:"start"`

	// Duration is the fragment display duration in seconds.
	Duration float64 `json:"duration"`
}
