package captions

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryConfig controls the Fetcher's retry behavior.
type RetryConfig struct {
	// MaxTries is the total number of fetch attempts, including the
	// first one. Default: 3.
	MaxTries int

	// InitialInterval is the delay before the first retry. Subsequent
	// delays grow exponentially. Default: 1s.
	InitialInterval time.Duration

	// MaxInterval caps the delay between retries. Default: 10s.
	MaxInterval time.Duration
}

// DefaultRetryConfig is suitable for interactive requests.
var DefaultRetryConfig = RetryConfig{
	MaxTries:        3,
	InitialInterval: 1 * time.Second,
	MaxInterval:     10 * time.Second,
}

// Fetcher wraps a Provider with a bounded-retry policy.
//
// Only transient failures (network errors, rate limiting, 5xx responses)
// are retried. Permanent failures (invalid reference, captions disabled,
// video unavailable) fail immediately without consuming retries. When
// every attempt fails transiently, Fetch returns an *ExhaustedError
// wrapping the error from the last attempt.
type Fetcher struct {
	provider Provider
	cfg      RetryConfig
}

// NewFetcher creates a Fetcher around the given provider. Zero fields in
// cfg are filled in from DefaultRetryConfig.
func NewFetcher(provider Provider, cfg RetryConfig) *Fetcher {
	if cfg.MaxTries <= 0 {
		cfg.MaxTries = DefaultRetryConfig.MaxTries
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultRetryConfig.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DefaultRetryConfig.MaxInterval
	}
	return &Fetcher{provider: provider, cfg: cfg}
}

// Provider returns the wrapped provider.
func (f *Fetcher) Provider() Provider {
	return f.provider
}

// Fetch retrieves the caption track for a video, retrying transient
// failures up to the configured bound.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, opts *FetchOptions) (*Track, error) {
	if opts == nil {
		opts = &FetchOptions{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	operation := func() (*Track, error) {
		track, err := f.provider.Fetch(ctx, videoID, opts)
		if err != nil {
			if !IsTransient(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return track, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.cfg.InitialInterval
	bo.MaxInterval = f.cfg.MaxInterval

	track, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(f.cfg.MaxTries)))
	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil, err
		}
		if IsTransient(err) {
			return nil, &ExhaustedError{Attempts: f.cfg.MaxTries, Err: err}
		}
		return nil, err
	}
	return track, nil
}

// IsTransient classifies an error as transient (worth retrying) or
// permanent. The permanent categories (validation failures, captions
// disabled, video unavailable, non-retryable API statuses) will never
// succeed on a retry; everything clearly network-shaped is transient.
// Unclassifiable errors are treated as permanent rather than retried
// blindly.
func IsTransient(err error) bool {
	var vErr *ValidationError
	var ncErr *NoCaptionsError
	var uErr *UnavailableError
	if errors.As(err, &vErr) || errors.As(err, &ncErr) || errors.As(err, &uErr) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return IsRetryableStatus(apiErr.StatusCode)
	}

	// Connection errors (dial failures, connection resets, etc.)
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// Timeouts (net.Error includes OpError, so check after OpError)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	// FetchError is the transport-failure umbrella; anything it wraps
	// that is permanent was caught above.
	var fErr *FetchError
	return errors.As(err, &fErr)
}

// IsRetryableStatus returns true for HTTP status codes worth retrying.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
