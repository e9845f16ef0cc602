// Package observability provides hooks for logging and metrics.
//
// This package enables optional instrumentation without adding hard
// dependencies on a logging or metrics backend. The value, expansion, render
// and routes packages stay pure; the command layer reports what it does with
// them through these hooks, and main decides where the events go.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetViewHooks(&logViewHooks{logger})
//	    observability.SetWatchHooks(&logWatchHooks{logger})
//	    // ... run application
//	}
//
// Emit events around the work:
//
//	start := time.Now()
//	v, err := value.Parse(data)
//	observability.View().OnParse(ctx, source, len(data), value.Count(v), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// View Hooks
// =============================================================================

// ViewHooks receives events from payload parsing, tree rendering and route
// grouping.
type ViewHooks interface {
	// OnParse records a payload decode. nodes is zero when err is non-nil.
	OnParse(ctx context.Context, source string, size, nodes int, duration time.Duration, err error)

	// OnRender records a tree render producing lines display lines with
	// open containers expanded.
	OnRender(ctx context.Context, format string, lines, open int, duration time.Duration)

	// OnGroup records a route grouping.
	OnGroup(ctx context.Context, routes, groups int, duration time.Duration)
}

// =============================================================================
// Watch Hooks
// =============================================================================

// WatchHooks receives events from the file watcher of the interactive browser.
type WatchHooks interface {
	// OnReload records a reload of the watched file. kept reports whether the
	// expansion state survived because the displayed entity was unchanged.
	OnReload(ctx context.Context, path string, kept bool, err error)

	// OnWatchError records an error reported by the watcher itself.
	OnWatchError(ctx context.Context, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopViewHooks is a no-op implementation of ViewHooks.
type NoopViewHooks struct{}

func (NoopViewHooks) OnParse(context.Context, string, int, int, time.Duration, error) {}
func (NoopViewHooks) OnRender(context.Context, string, int, int, time.Duration)       {}
func (NoopViewHooks) OnGroup(context.Context, int, int, time.Duration)                {}

// NoopWatchHooks is a no-op implementation of WatchHooks.
type NoopWatchHooks struct{}

func (NoopWatchHooks) OnReload(context.Context, string, bool, error) {}
func (NoopWatchHooks) OnWatchError(context.Context, string, error)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	viewHooks  ViewHooks  = NoopViewHooks{}
	watchHooks WatchHooks = NoopWatchHooks{}
	hooksMu    sync.RWMutex
)

// SetViewHooks registers custom view hooks.
// This should be called once at application startup.
func SetViewHooks(h ViewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewHooks = h
	}
}

// SetWatchHooks registers custom watch hooks.
func SetWatchHooks(h WatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		watchHooks = h
	}
}

// View returns the registered view hooks.
func View() ViewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewHooks
}

// Watch returns the registered watch hooks.
func Watch() WatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return watchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	viewHooks = NoopViewHooks{}
	watchHooks = NoopWatchHooks{}
}
