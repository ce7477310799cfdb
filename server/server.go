// Package server exposes the transcript pipeline over a small JSON API.
//
// The server owns request isolation and the download surface; the
// pipeline itself stays synchronous and per-request. Endpoints:
//
//	POST /api/transcripts       generate a transcript
//	GET  /download/{id}/{name}  download a generated artifact
//	GET  /healthz               liveness probe
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/xifan2333/2transcript/artifact"
	"github.com/xifan2333/2transcript/captions"
	"github.com/xifan2333/2transcript/pipeline"
)

// TranscriptRequest is the POST /api/transcripts request body.
type TranscriptRequest struct {
	// VideoURL is the video URL or bare identifier. Required.
	VideoURL string `json:"video_url"`

	// Language is the preferred caption language code. Default "en".
	Language string `json:"language"`

	// Punctuate requests the punctuation-restoration stage.
	Punctuate bool `json:"punctuate"`

	// Filename optionally overrides the artifact file name.
	Filename string `json:"filename"`
}

// TranscriptResponse is the POST /api/transcripts response body.
type TranscriptResponse struct {
	Success     bool   `json:"success"`
	VideoID     string `json:"video_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Language    string `json:"language,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Transcript  string `json:"transcript,omitempty"`
	Punctuated  bool   `json:"punctuated,omitempty"`
	Notice      string `json:"notice,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Server handles HTTP requests for the transcript pipeline.
type Server struct {
	pipe  *pipeline.Pipeline
	store *artifact.Store
}

// New creates a server around a pipeline and its artifact store.
func New(pipe *pipeline.Pipeline, store *artifact.Store) *Server {
	return &Server{pipe: pipe, store: store}
}

// Routes builds the request multiplexer.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transcripts", s.handleGenerate)
	mux.HandleFunc("GET /download/{id}/{name}", s.handleDownload)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req TranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, TranscriptResponse{
			Success: false,
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := s.pipe.Generate(r.Context(), pipeline.Request{
		URL:       req.VideoURL,
		Language:  req.Language,
		Punctuate: req.Punctuate,
		Filename:  req.Filename,
	})
	if err != nil {
		status := errorStatus(err)
		log.Printf("[WARN] transcript request failed (status %d): %v", status, err)
		writeJSON(w, status, TranscriptResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if result.Notice != "" {
		log.Printf("[WARN] degraded result for video %s: %s", result.VideoID, result.Notice)
	} else {
		log.Printf("[INFO] transcript generated for video %s (%d bytes)", result.VideoID, len(result.Text))
	}

	writeJSON(w, http.StatusOK, TranscriptResponse{
		Success:     true,
		VideoID:     result.VideoID,
		Title:       result.Title,
		Language:    result.Language,
		Filename:    result.Artifact.Name,
		Transcript:  result.Text,
		Punctuated:  result.Punctuated,
		Notice:      result.Notice,
		DownloadURL: fmt.Sprintf("/download/%s/%s", result.Artifact.ID, result.Artifact.Name),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := r.PathValue("name")

	path, err := s.store.Resolve(id, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// errorStatus maps pipeline errors to HTTP statuses. Every failure
// resolves to a readable message for that request only; nothing here is
// allowed to take the process down.
func errorStatus(err error) int {
	var vErr *captions.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	var uErr *captions.UnavailableError
	if errors.As(err, &uErr) {
		return http.StatusNotFound
	}
	var ncErr *captions.NoCaptionsError
	if errors.As(err, &ncErr) {
		return http.StatusUnprocessableEntity
	}
	var exErr *captions.ExhaustedError
	var apiErr *captions.APIError
	if errors.As(err, &exErr) || errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	var wErr *artifact.WriteError
	if errors.As(err, &wErr) {
		return http.StatusInternalServerError
	}
	if errors.Is(err, os.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body TranscriptResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[WARN] failed to encode response: %v", err)
	}
}
