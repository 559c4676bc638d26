package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu sync.Mutex
	at time.Time
}

func newStepClock() *stepClock {
	return &stepClock{at: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.at
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.at = c.at.Add(d)
}

func newTestMemory(t *testing.T, c *stepClock) *Memory {
	t.Helper()

	m := NewMemory(WithClock(c), WithSweepInterval(0))
	t.Cleanup(func() { _ = m.Close() })

	return m
}

func TestMemoryAllow_ExhaustsWindow(t *testing.T) {
	clk := newStepClock()
	store := newTestMemory(t, clk)
	policy := Policy{Window: time.Second, MaxRequests: 3}

	for want := 2; want >= 0; want-- {
		res, err := store.Allow(context.Background(), "api:203.0.113.5", policy)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, want, res.Remaining)
	}

	res, err := store.Allow(context.Background(), "api:203.0.113.5", policy)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, clk.Now().Add(time.Second), res.ResetTime)
}

func TestMemoryAllow_ResetsAfterWindow(t *testing.T) {
	clk := newStepClock()
	store := newTestMemory(t, clk)
	policy := Policy{Window: time.Second, MaxRequests: 1}

	res, err := store.Allow(context.Background(), "k", policy)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res, err = store.Allow(context.Background(), "k", policy)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	clk.Advance(1100 * time.Millisecond)

	res, err = store.Allow(context.Background(), "k", policy)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryAllow_RejectionsDoNotGrowCounter(t *testing.T) {
	clk := newStepClock()
	store := newTestMemory(t, clk)
	policy := Policy{Window: time.Minute, MaxRequests: 2}

	for range 2 {
		_, err := store.Allow(context.Background(), "k", policy)
		require.NoError(t, err)
	}

	for range 50 {
		res, err := store.Allow(context.Background(), "k", policy)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
	}

	clk.Advance(61 * time.Second)

	res, err := store.Allow(context.Background(), "k", policy)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestMemoryAllow_KeysAreIndependent(t *testing.T) {
	clk := newStepClock()
	store := newTestMemory(t, clk)
	policy := Policy{Window: time.Minute, MaxRequests: 1}

	res, err := store.Allow(context.Background(), "booking:a", policy)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(context.Background(), "booking:b", policy)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(context.Background(), "booking:a", policy)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestMemorySweep_EvictsExpiredRecords(t *testing.T) {
	clk := newStepClock()
	store := newTestMemory(t, clk)
	policy := Policy{Window: time.Second, MaxRequests: 5}

	for _, key := range []string{"a", "b", "c"} {
		_, err := store.Allow(context.Background(), key, policy)
		require.NoError(t, err)
	}
	require.Equal(t, 3, store.Len())

	clk.Advance(2 * time.Second)

	assert.Equal(t, 3, store.Sweep())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int64(3), store.Evicted())
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, Policy) (Result, error) {
	return Result{}, errors.New("store down")
}

func (failingStore) Close() error { return nil }

func TestLimiter_DegradesToFallback(t *testing.T) {
	clk := newStepClock()
	fallback := NewMemory(WithClock(clk), WithSweepInterval(0))
	limiter := New(failingStore{}, fallback)
	t.Cleanup(func() { _ = limiter.Close() })

	policy := Policy{Window: time.Minute, MaxRequests: 1}

	res := limiter.Allow(context.Background(), "k", policy)
	assert.True(t, res.Allowed)

	// The fallback keeps counting, so the limit still holds.
	res = limiter.Allow(context.Background(), "k", policy)
	assert.False(t, res.Allowed)
}

func TestLimiter_FailsOpenWithoutFallback(t *testing.T) {
	limiter := New(failingStore{}, nil)
	t.Cleanup(func() { _ = limiter.Close() })

	res := limiter.Allow(context.Background(), "k", Policy{Window: time.Minute, MaxRequests: 1})
	assert.True(t, res.Allowed)
}

func TestMemoryAllow_Concurrent(t *testing.T) {
	clk := newStepClock()
	store := newTestMemory(t, clk)
	policy := Policy{Window: time.Minute, MaxRequests: 10}

	var wg sync.WaitGroup
	allowed := make(chan bool, 40)

	for range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Allow(context.Background(), "k", policy)
			assert.NoError(t, err)
			allowed <- res.Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 10, count)
}
