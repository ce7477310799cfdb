// Package pipeline wires the transcript stages together: retry-protected
// caption fetch, text assembly, optional punctuation restoration, and
// artifact persistence. Each Generate call is one self-contained request;
// nothing is shared or cached across calls.
package pipeline

import (
	"context"
	"errors"

	"github.com/xifan2333/2transcript/artifact"
	"github.com/xifan2333/2transcript/captions"
	"github.com/xifan2333/2transcript/punct"
	"github.com/xifan2333/2transcript/transcript"
)

// Request describes one transcript generation request.
type Request struct {
	// URL is the video URL or bare video identifier.
	URL string

	// Language is the preferred caption language code. Empty means "en".
	Language string

	// Punctuate requests the punctuation-restoration stage.
	Punctuate bool

	// Filename overrides the artifact file name. Empty selects the video
	// title, falling back to the video ID.
	Filename string
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	// VideoID is the resolved video identifier.
	VideoID string

	// Title is the video title when the provider could determine it.
	Title string

	// Language is the language code of the caption track actually used.
	Language string

	// Text is the final transcript text, as written to the artifact.
	Text string

	// Punctuated reports whether the punctuation stage ran successfully.
	// False either because it was not requested or because the model was
	// unavailable and the pipeline degraded to the raw text.
	Punctuated bool

	// Notice carries a user-visible warning for degraded results, such
	// as a punctuation model outage. Empty on a clean run.
	Notice string

	// Artifact is the written transcript file.
	Artifact *artifact.Artifact
}

// Pipeline runs requests through the four stages in sequence.
type Pipeline struct {
	fetcher  *captions.Fetcher
	restorer *punct.Restorer // nil disables the punctuation stage entirely
	store    *artifact.Store
}

// New assembles a pipeline. restorer may be nil, in which case requests
// asking for punctuation degrade to raw text with a notice, the same way
// a model outage does.
func New(fetcher *captions.Fetcher, restorer *punct.Restorer, store *artifact.Store) *Pipeline {
	return &Pipeline{fetcher: fetcher, restorer: restorer, store: store}
}

// Generate runs one request to completion.
//
// Fetch and write failures are terminal: the error is returned and no
// artifact is produced. A punctuation model failure is the single
// recoverable case: the pipeline falls back to the unpunctuated text
// and reports it via Result.Notice.
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Result, error) {
	videoID, err := captions.ExtractVideoID(req.URL)
	if err != nil {
		return nil, err
	}

	track, err := p.fetcher.Fetch(ctx, videoID, &captions.FetchOptions{Language: req.Language})
	if err != nil {
		return nil, err
	}

	text := transcript.Assemble(track.Fragments)

	result := &Result{
		VideoID:  videoID,
		Title:    track.Title,
		Language: track.Language,
	}

	if req.Punctuate {
		restored, rerr := p.restore(ctx, text)
		switch {
		case rerr == nil:
			text = restored
			result.Punctuated = true
		default:
			var unavailable *punct.ModelUnavailableError
			if !errors.As(rerr, &unavailable) {
				return nil, rerr
			}
			// Soft failure: keep the raw text, tell the user.
			result.Notice = "punctuation model unavailable; transcript is unpunctuated"
		}
	}
	result.Text = text

	art, err := p.store.Create(text, p.artifactName(req, track))
	if err != nil {
		return nil, err
	}
	result.Artifact = art

	return result, nil
}

// restore runs the punctuation stage, reporting a missing restorer the
// same way as an unreachable model.
func (p *Pipeline) restore(ctx context.Context, text string) (string, error) {
	if p.restorer == nil {
		return "", &punct.ModelUnavailableError{Provider: "none", Err: errors.New("no punctuation provider configured")}
	}
	return p.restorer.Restore(ctx, text)
}

// artifactName picks the artifact base name: explicit request override,
// then video title, then video ID.
func (p *Pipeline) artifactName(req Request, track *captions.Track) string {
	if req.Filename != "" {
		return req.Filename
	}
	if track.Title != "" {
		return track.Title
	}
	return track.VideoID
}
