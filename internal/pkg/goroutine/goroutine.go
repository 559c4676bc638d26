// Package goroutine provides a bounded, panic-recovering runner for
// background work such as webhook fan-out and event publication.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/danargo/sitegate/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is the per-CPU multiplier applied when NewManager gets
// a non-positive limit.
const DefaultMaxGoroutine = 100

// Manager runs functions in goroutines under a concurrency cap, recovering
// panics and collecting returned errors until Wait.
type Manager struct {
	mu   sync.Mutex
	errs []error

	wg   sync.WaitGroup
	sema chan struct{}

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager capped at maxGoroutine concurrent tasks.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f if capacity is available. When the cap is reached or the
// manager has been closed by Wait, the task is dropped with a warning rather
// than blocking the caller.
func (m *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	if m == nil {
		return
	}

	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	if m.closed {
		slog.WarnContext(pCtx, "goroutine manager closed, task dropped")
		return
	}

	select {
	case m.sema <- struct{}{}:
	default:
		slog.WarnContext(pCtx, "goroutine limit reached, task dropped")
		return
	}

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.sema
			m.wg.Done()

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(pCtx, "panic in goroutine", "panic", rvr, "stack", paths)
				} else {
					slog.ErrorContext(pCtx, "panic in goroutine", "panic", rvr, "stack", string(stack))
				}
			}
		}()

		select {
		case <-pCtx.Done():
			slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
		default:
			if err := f(pCtx); err != nil {
				m.mu.Lock()
				m.errs = append(m.errs, err)
				m.mu.Unlock()
			}
		}
	}()
}

// Wait closes the manager, blocks until scheduled tasks finish, and returns
// the joined task errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.stateMu.Lock()
	m.closed = true
	m.stateMu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	return errors.Join(m.errs...)
}
