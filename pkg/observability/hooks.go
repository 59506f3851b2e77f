// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and backend-agnostic. The game engine and the
// HTTP API emit events through the registered hooks; main registers concrete
// implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGameHooks(&myGameHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Game().OnPlacement(level, cells)
//	observability.HTTP().OnResponse(ctx, method, route, status, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Game Hooks
// =============================================================================

// GameHooks receives events from game sessions.
type GameHooks interface {
	// OnPlacement records a committed placement covering cells board cells.
	OnPlacement(level, cells int)

	// OnRejected records a placement request that did not fit.
	OnRejected(row, col int)

	// OnLinesCleared records cleared lines after a placement.
	OnLinesCleared(level, count int)

	// OnLevelComplete records a finished level, before the level advances.
	OnLevelComplete(level, score int)

	// OnHint records a hint request.
	OnHint(found bool)

	// OnReset records an explicit session reset.
	OnReset()
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGameHooks is a no-op implementation of GameHooks.
type NoopGameHooks struct{}

func (NoopGameHooks) OnPlacement(int, int)     {}
func (NoopGameHooks) OnRejected(int, int)      {}
func (NoopGameHooks) OnLinesCleared(int, int)  {}
func (NoopGameHooks) OnLevelComplete(int, int) {}
func (NoopGameHooks) OnHint(bool)              {}
func (NoopGameHooks) OnReset()                 {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gameHooks GameHooks = NoopGameHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetGameHooks registers custom game hooks.
// This should be called once at application startup before any session is created.
func SetGameHooks(h GameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gameHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Game returns the registered game hooks.
func Game() GameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gameHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gameHooks = NoopGameHooks{}
	httpHooks = NoopHTTPHooks{}
}
