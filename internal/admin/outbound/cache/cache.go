// Package cache stores short-lived admin verification codes in Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "sitegate:"

type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func New(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("admin.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Cache) StoreCode(ctx context.Context, key, code string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "StoreCode")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyPrefix+key, code, ttl).Err()
}

// ConsumeCode reads and deletes the code in one step so it can only be
// checked once.
func (c *Cache) ConsumeCode(ctx context.Context, key string) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "ConsumeCode")
	defer func() { c.endSpan(span, err) }()

	code, err := c.client.GetDel(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", goerror.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return code, nil
}
