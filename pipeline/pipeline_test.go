package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/2transcript/artifact"
	"github.com/xifan2333/2transcript/captions"
	"github.com/xifan2333/2transcript/punct"
)

// captionStub serves a fixed track or error.
type captionStub struct {
	track *captions.Track
	err   error
}

func (s *captionStub) Name() string { return "stub" }

func (s *captionStub) Fetch(_ context.Context, videoID string, _ *captions.FetchOptions) (*captions.Track, error) {
	if s.err != nil {
		return nil, s.err
	}
	track := *s.track
	track.VideoID = videoID
	return &track, nil
}

// modelStub returns a fixed restoration or error.
type modelStub struct {
	output string
	err    error
	calls  int
}

func (s *modelStub) Name() string { return "stub-model" }

func (s *modelStub) Restore(_ context.Context, chunk string, _ *punct.Options) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.output != "" {
		return s.output, nil
	}
	return chunk, nil
}

var helloTrack = &captions.Track{
	Title:    "Greeting Video",
	Language: "en",
	Fragments: []captions.Fragment{
		{Text: "hello world", Start: 0.0, Duration: 1.0},
		{Text: "how are you", Start: 1.0, Duration: 2.0},
	},
}

func newTestPipeline(t *testing.T, provider captions.Provider, model punct.Provider) (*Pipeline, *artifact.Store) {
	t.Helper()

	store, err := artifact.NewStore(t.TempDir(), time.Hour)
	require.NoError(t, err)

	fetcher := captions.NewFetcher(provider, captions.RetryConfig{
		MaxTries:        3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	})

	var restorer *punct.Restorer
	if model != nil {
		restorer, err = punct.NewRestorerWith(model, nil)
		require.NoError(t, err)
	}

	return New(fetcher, restorer, store), store
}

func TestGenerate_Unpunctuated(t *testing.T) {
	pipe, _ := newTestPipeline(t, &captionStub{track: helloTrack}, nil)

	result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0"})
	require.NoError(t, err)

	assert.Equal(t, "abc123XYZ0", result.VideoID)
	assert.Equal(t, "hello world how are you", result.Text)
	assert.False(t, result.Punctuated)
	assert.Empty(t, result.Notice)

	data, err := os.ReadFile(result.Artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello world how are you", string(data))
	assert.Equal(t, "Greeting Video.md", result.Artifact.Name)
}

func TestGenerate_Punctuated(t *testing.T) {
	model := &modelStub{output: "Hello world. How are you?"}
	pipe, _ := newTestPipeline(t, &captionStub{track: helloTrack}, model)

	result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0", Punctuate: true})
	require.NoError(t, err)

	assert.Equal(t, "Hello world. How are you?", result.Text)
	assert.True(t, result.Punctuated)
	assert.Empty(t, result.Notice)
	assert.Equal(t, 1, model.calls)

	data, err := os.ReadFile(result.Artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world. How are you?", string(data))
}

func TestGenerate_ModelOutageDegradesSoftly(t *testing.T) {
	model := &modelStub{err: errors.New("model endpoint down")}
	pipe, _ := newTestPipeline(t, &captionStub{track: helloTrack}, model)

	result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0", Punctuate: true})
	require.NoError(t, err, "model outage must not fail the request")

	assert.Equal(t, "hello world how are you", result.Text)
	assert.False(t, result.Punctuated)
	assert.NotEmpty(t, result.Notice)
	require.NotNil(t, result.Artifact)
}

func TestGenerate_NoRestorerConfiguredDegradesSoftly(t *testing.T) {
	pipe, _ := newTestPipeline(t, &captionStub{track: helloTrack}, nil)

	result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0", Punctuate: true})
	require.NoError(t, err)
	assert.False(t, result.Punctuated)
	assert.NotEmpty(t, result.Notice)
}

func TestGenerate_NoCaptionsWritesNothing(t *testing.T) {
	stub := &captionStub{err: &captions.NoCaptionsError{VideoID: "abc123XYZ0"}}
	pipe, store := newTestPipeline(t, stub, nil)

	_, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0"})
	require.Error(t, err)

	var ncErr *captions.NoCaptionsError
	assert.ErrorAs(t, err, &ncErr)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "failed requests must not leave artifacts behind")
}

func TestGenerate_InvalidReference(t *testing.T) {
	pipe, _ := newTestPipeline(t, &captionStub{track: helloTrack}, nil)

	_, err := pipe.Generate(context.Background(), Request{URL: "not a video!"})
	require.Error(t, err)

	var vErr *captions.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGenerate_EmptyTrackFlowsThrough(t *testing.T) {
	empty := &captions.Track{Title: "Silent", Fragments: nil}
	model := &modelStub{}
	pipe, _ := newTestPipeline(t, &captionStub{track: empty}, model)

	result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0", Punctuate: true})
	require.NoError(t, err)

	assert.Equal(t, "", result.Text)
	assert.True(t, result.Punctuated)
	assert.Zero(t, model.calls, "empty text must not invoke the model")

	data, err := os.ReadFile(result.Artifact.Path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestGenerate_FilenameFallbacks(t *testing.T) {
	t.Run("explicit filename wins", func(t *testing.T) {
		pipe, _ := newTestPipeline(t, &captionStub{track: helloTrack}, nil)
		result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0", Filename: "custom"})
		require.NoError(t, err)
		assert.Equal(t, "custom.md", result.Artifact.Name)
	})

	t.Run("video id when no title", func(t *testing.T) {
		track := &captions.Track{Fragments: helloTrack.Fragments}
		pipe, _ := newTestPipeline(t, &captionStub{track: track}, nil)
		result, err := pipe.Generate(context.Background(), Request{URL: "abc123XYZ0"})
		require.NoError(t, err)
		assert.Equal(t, "abc123XYZ0.md", result.Artifact.Name)
	})
}
