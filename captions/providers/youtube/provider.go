// Package youtube provides a caption provider for YouTube videos.
//
// The provider scrapes the public watch page rather than using an API key:
// it extracts the caption track list from the embedded player response,
// selects a track by language preference, then downloads and decodes the
// timedtext XML for that track.
//
// Features:
//   - No API key or authentication required
//   - Language preference with English and first-track fallback
//   - Distinguishes author-uploaded tracks from auto-generated (ASR) ones
//   - Extracts the video title for display and file naming
//
// Example usage:
//
//	import (
//	    "context"
//	    "github.com/xifan2333/2transcript/captions"
//	    _ "github.com/xifan2333/2transcript/captions/providers/youtube"
//	)
//
//	track, err := captions.Fetch(ctx, "youtube", "dQw4w9WgXcQ",
//	    &captions.FetchOptions{Language: "en"})
package youtube

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/xifan2333/2transcript/captions"
)

// Provider implements the caption provider interface for YouTube.
type Provider struct {
	client *http.Client
}

// Ensure Provider implements captions.Provider interface at compile time.
var _ captions.Provider = (*Provider)(nil)

func init() {
	// Register the provider on package initialization.
	// This allows the provider to be used via captions.Get("youtube")
	// or captions.Fetch(ctx, "youtube", ...).
	captions.Register(New(nil))
}

// New creates a YouTube provider. A nil client selects a default client
// with scraping-appropriate timeouts.
func New(client *http.Client) *Provider {
	if client == nil {
		client = newScrapeClient()
	}
	return &Provider{client: client}
}

// newScrapeClient creates an HTTP client with proper settings for
// scraping the watch page.
func newScrapeClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// Name returns the provider's unique identifier.
//
// Returns "youtube".
func (p *Provider) Name() string {
	return "youtube"
}

// Fetch retrieves the caption track for a YouTube video.
//
// The method performs two HTTP requests: one for the watch page to
// discover available tracks, and one for the timedtext document of the
// selected track. It performs a single attempt; retry policy belongs to
// captions.Fetcher.
//
// Errors:
//   - *captions.UnavailableError: video deleted, private, or blocked
//   - *captions.NoCaptionsError: video exists but has no caption track
//   - *captions.APIError: unexpected HTTP status from YouTube
//   - *captions.FetchError: network or decoding failure
func (p *Provider) Fetch(ctx context.Context, videoID string, opts *captions.FetchOptions) (*captions.Track, error) {
	if opts == nil {
		opts = &captions.FetchOptions{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	page, err := fetchWatchPage(ctx, p.client, videoID)
	if err != nil {
		return nil, err
	}

	if err := checkPlayability(page, videoID); err != nil {
		return nil, err
	}

	tracks, err := parseCaptionTracks(page, videoID)
	if err != nil {
		return nil, err
	}

	selected := selectTrack(tracks, opts.Language)

	data, err := fetchTimedText(ctx, p.client, selected.BaseURL)
	if err != nil {
		return nil, err
	}

	fragments, err := parseTimedText(data)
	if err != nil {
		return nil, err
	}

	return &captions.Track{
		VideoID:   videoID,
		Title:     parseVideoTitle(page),
		Language:  selected.LanguageCode,
		Generated: selected.Kind == "asr",
		Fragments: fragments,
	}, nil
}
