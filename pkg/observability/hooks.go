// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about document passes and content hashing.
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
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetHashHooks(&myHashHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnRewriteStart(ctx, path, mode)
//	// ... rewrite the document ...
//	observability.Pipeline().OnRewriteComplete(ctx, path, mode, refs, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the document-processing pipeline.
type PipelineHooks interface {
	// Rewrite events (pass 1: reference rewriting)
	OnRewriteStart(ctx context.Context, document, mode string)
	OnRewriteComplete(ctx context.Context, document, mode string, references int, duration time.Duration, err error)

	// Clean events (pass 2: stale data blocks)
	OnCleanStart(ctx context.Context, document string)
	OnCleanComplete(ctx context.Context, document string, dropped int, duration time.Duration, err error)

	// Append events (pass 3: fresh data blocks)
	OnAppendStart(ctx context.Context, document string, entries int)
	OnAppendComplete(ctx context.Context, document string, appended int, duration time.Duration, err error)
}

// =============================================================================
// Hash Hooks
// =============================================================================

// HashHooks receives events from content-hash operations.
type HashHooks interface {
	// OnHashComputed records a freshly computed file digest.
	OnHashComputed(ctx context.Context, path string, bytes int64, duration time.Duration)

	// OnCacheHit records a digest served from the per-session memo.
	OnCacheHit(ctx context.Context, path string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRewriteStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnRewriteComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnCleanStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnCleanComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnAppendStart(context.Context, string, int)                        {}
func (NoopPipelineHooks) OnAppendComplete(context.Context, string, int, time.Duration, error) {
}

// NoopHashHooks is a no-op implementation of HashHooks.
type NoopHashHooks struct{}

func (NoopHashHooks) OnHashComputed(context.Context, string, int64, time.Duration) {}
func (NoopHashHooks) OnCacheHit(context.Context, string)                           {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hashHooks     HashHooks     = NoopHashHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any document is processed.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetHashHooks registers custom hash hooks.
// This should be called once at application startup before any document is processed.
func SetHashHooks(h HashHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hashHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Hash returns the registered hash hooks.
func Hash() HashHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hashHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	hashHooks = NoopHashHooks{}
}
