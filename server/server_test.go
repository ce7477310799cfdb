package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/2transcript/artifact"
	"github.com/xifan2333/2transcript/captions"
	"github.com/xifan2333/2transcript/pipeline"
)

type fakeProvider struct {
	track *captions.Track
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(_ context.Context, videoID string, _ *captions.FetchOptions) (*captions.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	track := *f.track
	track.VideoID = videoID
	return &track, nil
}

func newTestServer(t *testing.T, provider captions.Provider) *Server {
	t.Helper()

	store, err := artifact.NewStore(t.TempDir(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	fetcher := captions.NewFetcher(provider, captions.RetryConfig{
		MaxTries:        2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	})
	pipe := pipeline.New(fetcher, nil, store)
	return New(pipe, store)
}

func postTranscript(t *testing.T, mux *http.ServeMux, body TranscriptRequest) (*httptest.ResponseRecorder, TranscriptResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp TranscriptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestHandleGenerate_Success(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{track: &captions.Track{
		Title:    "Talk",
		Language: "en",
		Fragments: []captions.Fragment{
			{Text: "hello world", Start: 0, Duration: 1},
			{Text: "how are you", Start: 1, Duration: 2},
		},
	}})
	mux := srv.Routes()

	rec, resp := postTranscript(t, mux, TranscriptRequest{VideoURL: "abc123XYZ0"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "abc123XYZ0", resp.VideoID)
	assert.Equal(t, "hello world how are you", resp.Transcript)
	assert.Equal(t, "Talk.md", resp.Filename)
	assert.True(t, strings.HasPrefix(resp.DownloadURL, "/download/"))

	// The advertised download URL serves the artifact back.
	dlReq := httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil)
	dlRec := httptest.NewRecorder()
	mux.ServeHTTP(dlRec, dlReq)

	assert.Equal(t, http.StatusOK, dlRec.Code)
	assert.Equal(t, "hello world how are you", dlRec.Body.String())
	assert.Contains(t, dlRec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, dlRec.Header().Get("Content-Type"), "text/markdown")
}

func TestHandleGenerate_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		provider   captions.Provider
		videoURL   string
		wantStatus int
	}{
		{
			name:       "invalid reference",
			provider:   &fakeProvider{track: &captions.Track{}},
			videoURL:   "not a video!",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no captions",
			provider:   &fakeProvider{err: &captions.NoCaptionsError{VideoID: "abc123XYZ0"}},
			videoURL:   "abc123XYZ0",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "video unavailable",
			provider:   &fakeProvider{err: &captions.UnavailableError{VideoID: "abc123XYZ0", Reason: "private"}},
			videoURL:   "abc123XYZ0",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "upstream exhausted",
			provider:   &fakeProvider{err: &captions.APIError{StatusCode: http.StatusServiceUnavailable}},
			videoURL:   "abc123XYZ0",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown failure",
			provider:   &fakeProvider{err: errors.New("boom")},
			videoURL:   "abc123XYZ0",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.provider)
			rec, resp := postTranscript(t, srv.Routes(), TranscriptRequest{VideoURL: tc.videoURL})

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandleGenerate_BadBody(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{track: &captions.Track{}})

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_PunctuationNotice(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{track: &captions.Track{
		Fragments: []captions.Fragment{{Text: "hello world", Start: 0, Duration: 1}},
	}})

	rec, resp := postTranscript(t, srv.Routes(), TranscriptRequest{
		VideoURL:  "abc123XYZ0",
		Punctuate: true,
	})

	// No restorer configured: the request still succeeds with a notice.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.False(t, resp.Punctuated)
	assert.NotEmpty(t, resp.Notice)
	assert.Equal(t, "hello world", resp.Transcript)
}

func TestHandleDownload_Missing(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{track: &captions.Track{}})

	req := httptest.NewRequest(http.MethodGet, "/download/not-a-uuid/file.md", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{track: &captions.Track{}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
