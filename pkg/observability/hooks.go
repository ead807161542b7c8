// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about upstream fetches, catalog
// cache behavior, and query execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFetchHooks(&myFetchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Fetch().OnFetchStart(ctx, url)
//	// ... perform the request ...
//	observability.Fetch().OnFetchComplete(ctx, url, status, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Fetch Hooks
// =============================================================================

// FetchHooks receives events from upstream index fetches.
type FetchHooks interface {
	// OnFetchStart records the start of an index download.
	OnFetchStart(ctx context.Context, url string)

	// OnFetchComplete records a finished download. Status is zero when
	// the request failed before a response arrived.
	OnFetchComplete(ctx context.Context, url string, status int, size int, duration time.Duration, err error)

	// OnParseComplete records the outcome of parsing a fetched listing.
	OnParseComplete(ctx context.Context, records int, skipped int, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the catalog store.
type CacheHooks interface {
	// OnHit records a read served from a fresh snapshot.
	OnHit(ctx context.Context)

	// OnMiss records a read that found no fresh snapshot.
	OnMiss(ctx context.Context)

	// OnRefresh records a refresh attempt and its outcome.
	OnRefresh(ctx context.Context, packages int, duration time.Duration, err error)

	// OnStaleServe records a read answered from an expired snapshot
	// after a refresh failure.
	OnStaleServe(ctx context.Context, age time.Duration)
}

// =============================================================================
// Query Hooks
// =============================================================================

// QueryHooks receives events from catalog queries.
type QueryHooks interface {
	// OnQuery records a query and its match count.
	OnQuery(ctx context.Context, matches int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetchStart(context.Context, string) {}
func (NoopFetchHooks) OnFetchComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopFetchHooks) OnParseComplete(context.Context, int, int, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(context.Context)                                {}
func (NoopCacheHooks) OnMiss(context.Context)                               {}
func (NoopCacheHooks) OnRefresh(context.Context, int, time.Duration, error) {}
func (NoopCacheHooks) OnStaleServe(context.Context, time.Duration)          {}

// NoopQueryHooks is a no-op implementation of QueryHooks.
type NoopQueryHooks struct{}

func (NoopQueryHooks) OnQuery(context.Context, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	fetchHooks FetchHooks = NoopFetchHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	queryHooks QueryHooks = NoopQueryHooks{}
	hooksMu    sync.RWMutex
)

// SetFetchHooks registers custom fetch hooks.
// This should be called once at application startup before any fetches.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetQueryHooks registers custom query hooks.
// This should be called once at application startup before any queries.
func SetQueryHooks(h QueryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		queryHooks = h
	}
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Query returns the registered query hooks.
func Query() QueryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return queryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	fetchHooks = NoopFetchHooks{}
	cacheHooks = NoopCacheHooks{}
	queryHooks = NoopQueryHooks{}
}
