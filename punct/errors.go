package punct

import "fmt"

// ModelUnavailableError reports that the punctuation model could not be
// invoked. This is the pipeline's single recoverable failure: callers
// catch it and fall back to the unpunctuated text with a notice instead
// of aborting the request.
type ModelUnavailableError struct {
	// Provider is the name of the provider that failed.
	Provider string

	// Err is the underlying error.
	Err error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("punctuation model '%s' unavailable: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}

// RestoreError represents a failure inside a provider's restore call,
// such as a malformed model response.
type RestoreError struct {
	// Message provides a human-readable description of the error.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *RestoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("restore error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("restore error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *RestoreError) Unwrap() error {
	return e.Err
}

// APIError represents a non-200 HTTP response from a model endpoint.
type APIError struct {
	// StatusCode is the HTTP status code returned by the endpoint.
	StatusCode int

	// Response is the raw response body.
	Response string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Response)
}
