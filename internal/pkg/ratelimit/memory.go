package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/danargo/sitegate/internal/pkg/clock"
	"go.uber.org/atomic"
)

// DefaultSweepInterval is how often the in-memory store evicts expired records.
const DefaultSweepInterval = time.Minute

// Memory is the in-process Store. State is lost on restart and not shared
// across processes; it exists as the default store for single-instance
// deployments and as the fallback when Redis is unreachable.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record

	clock     clock.Clocker
	sweepStop chan struct{}
	sweepDone chan struct{}
	closeOnce sync.Once

	evicted atomic.Int64
}

// MemoryOption customizes a Memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	clock         clock.Clocker
	sweepInterval time.Duration
}

// WithClock replaces the time source. Test helper.
func WithClock(c clock.Clocker) MemoryOption {
	return func(o *memoryOptions) {
		o.clock = c
	}
}

// WithSweepInterval overrides the eviction interval. A non-positive value
// disables the background sweep entirely.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.sweepInterval = d
	}
}

// NewMemory constructs a Memory store and starts its background sweep.
// Callers own the store and must Close it to stop the sweep.
func NewMemory(opts ...MemoryOption) *Memory {
	o := &memoryOptions{
		clock:         clock.New(),
		sweepInterval: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		records:   make(map[string]Record),
		clock:     o.clock,
		sweepStop: make(chan struct{}),
		sweepDone: make(chan struct{}),
	}

	if o.sweepInterval > 0 {
		go m.sweepLoop(o.sweepInterval)
	} else {
		close(m.sweepDone)
	}

	return m
}

// Allow applies the fixed-window check for key. The whole read-check-increment
// runs under the store mutex so concurrent handlers cannot race the counter.
func (m *Memory) Allow(_ context.Context, key string, p Policy) (Result, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok || now.After(rec.ResetTime) {
		rec = Record{Count: 1, ResetTime: now.Add(p.Window)}
		m.records[key] = rec

		return Result{Allowed: true, Remaining: p.MaxRequests - 1, ResetTime: rec.ResetTime}, nil
	}

	if rec.Count >= p.MaxRequests {
		// Rejected requests are not counted.
		return Result{Allowed: false, Remaining: 0, ResetTime: rec.ResetTime}, nil
	}

	rec.Count++
	m.records[key] = rec

	return Result{Allowed: true, Remaining: p.MaxRequests - rec.Count, ResetTime: rec.ResetTime}, nil
}

// Sweep evicts all records whose window has passed and returns the number
// removed. Called periodically by the background loop; exported so tests and
// operators can trigger it directly.
func (m *Memory) Sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, rec := range m.records {
		if now.After(rec.ResetTime) {
			delete(m.records, key)
			removed++
		}
	}
	m.evicted.Add(int64(removed))

	return removed
}

// Len reports the number of live records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

// Evicted reports the total number of records removed by sweeps.
func (m *Memory) Evicted() int64 {
	return m.evicted.Load()
}

// Close stops the background sweep. Safe to call more than once.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		close(m.sweepStop)
	})
	<-m.sweepDone

	return nil
}

func (m *Memory) sweepLoop(interval time.Duration) {
	defer close(m.sweepDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.sweepStop:
			return
		}
	}
}
