// Package idempotency deduplicates operations behind a Redis claim key,
// so replayed form submissions run their side effects at most once.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInProgress = errors.New("operation already in progress")
	ErrCompleted  = errors.New("operation already completed")
	ErrFailed     = errors.New("operation previously failed")
	ErrBadState   = errors.New("unrecognized idempotency state")
)

type State string

const (
	StateNone       State = "none"        // no prior attempt, caller may proceed
	StateInProgress State = "in_progress" // another attempt holds the claim
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateError      State = "error"
)

func (s State) String() string {
	return string(s)
}

// Idempotency guards an operation keyed by a caller-supplied key.
type Idempotency interface {
	Claim(ctx context.Context, key string, hold time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Run(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// Tracker is a Redis-backed Idempotency implementation.
type Tracker struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client) *Tracker {
	return &Tracker{
		client: client,
		prefix: "idempotency:",
	}
}

const (
	defaultHold     = time.Minute
	defaultStateTTL = 24 * time.Hour
)

type Option func(*runOptions)

type runOptions struct {
	hold     time.Duration
	stateTTL time.Duration
}

// WithHold overrides how long the in-progress claim lives before it expires.
func WithHold(hold time.Duration) Option {
	return func(o *runOptions) {
		o.hold = hold
	}
}

// WithStateTTL overrides how long the terminal state is remembered.
func WithStateTTL(ttl time.Duration) Option {
	return func(o *runOptions) {
		o.stateTTL = ttl
	}
}

// Claim attempts to take ownership of key. StateNone means the caller won the
// claim and should run the operation; any other state reports what a prior
// attempt left behind.
func (t *Tracker) Claim(ctx context.Context, key string, hold time.Duration) (State, error) {
	fk := t.prefix + key

	won, err := t.client.SetNX(ctx, fk, StateInProgress.String(), hold).Result()
	if err != nil {
		return StateError, err
	}
	if won {
		return StateNone, nil
	}

	current, err := t.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// The claim expired between SetNX and Get; try once more.
		won, err = t.client.SetNX(ctx, fk, StateInProgress.String(), hold).Result()
		if err != nil {
			return StateError, err
		}
		if won {
			return StateNone, nil
		}

		return StateError, ErrBadState
	}
	if err != nil {
		return StateError, err
	}

	switch current {
	case StateInProgress.String():
		return StateInProgress, nil
	case StateCompleted.String():
		return StateCompleted, nil
	case StateFailed.String():
		return StateFailed, nil
	default:
		return StateError, ErrBadState
	}
}

func (t *Tracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return t.client.Set(ctx, t.prefix+key, StateCompleted.String(), ttl).Err()
}

func (t *Tracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return t.client.Set(ctx, t.prefix+key, StateFailed.String(), ttl).Err()
}

// Run executes fn under the key's claim, recording the terminal state so a
// replay with the same key is rejected with a typed error.
func (t *Tracker) Run(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	ro := &runOptions{
		hold:     defaultHold,
		stateTTL: defaultStateTTL,
	}
	for _, opt := range opts {
		opt(ro)
	}
	if ro.hold <= 0 {
		ro.hold = defaultHold
	}
	if ro.stateTTL <= 0 {
		ro.stateTTL = defaultStateTTL
	}

	state, err := t.Claim(ctx, key, ro.hold)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	case StateFailed:
		return ErrFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := t.MarkFailed(ctx, key, ro.stateTTL); markErr != nil {
			return markErr
		}

		return err
	}

	return t.MarkCompleted(ctx, key, ro.stateTTL)
}
