package captions

import (
	"context"
	"fmt"
	"sync"
)

// Registry manages all registered caption providers.
//
// The registry is thread-safe and can be accessed concurrently.
// Providers are typically registered during package initialization using
// init() functions.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// globalRegistry is the default registry used by package-level functions.
var globalRegistry = &Registry{
	providers: make(map[string]Provider),
}

// Register registers a new caption provider in the global registry.
//
// This function is typically called from a provider's init() function:
//
//	func init() {
//	    captions.Register(&MyProvider{})
//	}
//
// If a provider with the same name already exists, it will be replaced.
// This function is safe for concurrent use.
func Register(provider Provider) {
	globalRegistry.Register(provider)
}

// Get retrieves a provider by name from the global registry.
//
// Returns an error if the provider is not found.
// This function is safe for concurrent use.
func Get(name string) (Provider, error) {
	return globalRegistry.Get(name)
}

// List returns all registered provider names from the global registry.
//
// The order of names is not guaranteed.
// This function is safe for concurrent use.
func List() []string {
	return globalRegistry.List()
}

// Register registers a new provider to this registry.
//
// If a provider with the same name already exists, it will be replaced.
// This method is safe for concurrent use.
func (r *Registry) Register(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// Get retrieves a provider by name from this registry.
//
// Returns an error if the provider is not found.
// This method is safe for concurrent use.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider '%s' not found", name)
	}
	return provider, nil
}

// List returns all registered provider names from this registry.
//
// The order of names is not guaranteed.
// This method is safe for concurrent use.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Fetch is a convenience function that resolves a provider by name and
// performs a single fetch attempt.
//
// Most callers should construct a Fetcher instead, which adds bounded
// retries around transient failures.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - providerName: Name of the provider to use (e.g. "youtube")
//   - videoID: The service-specific video identifier
//   - opts: Fetch options (nil for defaults)
func Fetch(ctx context.Context, providerName, videoID string, opts *FetchOptions) (*Track, error) {
	provider, err := Get(providerName)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &FetchOptions{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return provider.Fetch(ctx, videoID, opts)
}
