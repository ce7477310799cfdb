package captions

import "fmt"

// ValidationError reports an invalid video reference or invalid options.
//
// Validation errors are permanent: the same input will never succeed, so
// they are never retried.
type ValidationError struct {
	// Field is the name of the input that failed validation.
	Field string

	// Message describes what validation failed.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NoCaptionsError reports that the video exists but offers no caption
// track (captions disabled or none uploaded).
//
// This is a permanent failure and is never retried.
type NoCaptionsError struct {
	// VideoID is the video the lookup was performed for.
	VideoID string
}

func (e *NoCaptionsError) Error() string {
	return fmt.Sprintf("no captions available for video '%s'", e.VideoID)
}

// UnavailableError reports that the video itself cannot be accessed
// (deleted, private, or region-blocked).
//
// This is a permanent failure and is never retried.
type UnavailableError struct {
	// VideoID is the video the lookup was performed for.
	VideoID string

	// Reason is the service-supplied explanation, when available.
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("video '%s' is unavailable: %s", e.VideoID, e.Reason)
	}
	return fmt.Sprintf("video '%s' is unavailable", e.VideoID)
}

// FetchError represents a failure during the fetch operation itself,
// such as a network error or a malformed response.
//
// Fetch errors are treated as transient by the Fetcher's retry policy
// unless the wrapped error is itself permanent.
type FetchError struct {
	// Step identifies which step of the fetch process failed
	// (e.g. "watch_page", "timedtext", "parse_tracks").
	Step string

	// Message provides a human-readable description of the error.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch error at step '%s': %s: %v", e.Step, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch error at step '%s': %s", e.Step, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// APIError represents a non-200 HTTP response from the captioning service.
//
// Whether an APIError is retried depends on the status code: 429 and 5xx
// are transient, other codes are permanent.
type APIError struct {
	// StatusCode is the HTTP status code returned by the service.
	StatusCode int

	// Response is the raw response body, truncated by the caller if large.
	Response string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Response)
}

// ExhaustedError reports that every retry attempt failed on a transient
// error. It wraps the error from the final attempt.
type ExhaustedError struct {
	// Attempts is the number of fetch attempts performed.
	Attempts int

	// Err is the error from the last attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}
