// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about encoding, geometry compilation, and memoization.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so pkg/barcode never
// imports a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetMemoHooks(&myMemoHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	p, err := symbology.Encode(reg, value, format, opts)
//	observability.Render().OnEncode(ctx, string(format), p.Len(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the render path.
type RenderHooks interface {
	// OnEncode records one encoder invocation. modules is zero on failure.
	OnEncode(ctx context.Context, format string, modules int, duration time.Duration, err error)

	// OnCompile records a successful geometry compilation.
	OnCompile(ctx context.Context, rects int, width float64, duration time.Duration)

	// OnRenderError records a failure caught at the render boundary.
	OnRenderError(ctx context.Context, format, code string)
}

// =============================================================================
// Memo Hooks
// =============================================================================

// MemoHooks receives events from render boundary memoization.
type MemoHooks interface {
	// OnMemoHit records a render that reused the previous result.
	OnMemoHit(ctx context.Context)

	// OnMemoMiss records a render that recomputed.
	OnMemoMiss(ctx context.Context)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnEncode(context.Context, string, int, time.Duration, error) {}
func (NoopRenderHooks) OnCompile(context.Context, int, float64, time.Duration)     {}
func (NoopRenderHooks) OnRenderError(context.Context, string, string)              {}

// NoopMemoHooks is a no-op implementation of MemoHooks.
type NoopMemoHooks struct{}

func (NoopMemoHooks) OnMemoHit(context.Context)  {}
func (NoopMemoHooks) OnMemoMiss(context.Context) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	memoHooks   MemoHooks   = NoopMemoHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetMemoHooks registers custom memo hooks.
func SetMemoHooks(h MemoHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		memoHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Memo returns the registered memo hooks.
func Memo() MemoHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return memoHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	memoHooks = NoopMemoHooks{}
}
