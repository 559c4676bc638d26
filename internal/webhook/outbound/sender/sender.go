// Package sender delivers signed webhook payloads over HTTP.
package sender

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/signing"
	"github.com/danargo/sitegate/internal/webhook/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerSignature = "X-Webhook-Signature"
	headerEvent     = "X-Webhook-Event"
	headerID        = "X-Webhook-ID"

	defaultTimeout = 10 * time.Second
)

type Sender struct {
	client *http.Client
	ins    instrument.Instrumentation
}

func New(timeout time.Duration, ins instrument.Instrumentation) *Sender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Sender{
		client: &http.Client{Timeout: timeout},
		ins:    ins,
	}
}

// Send makes one delivery attempt. Anything short of a 2xx response, including
// transport failures, comes back as an unsuccessful result; Send itself never
// errors so callers can record the attempt uniformly.
func (s *Sender) Send(ctx context.Context, hook entity.Webhook, delivery entity.Delivery) entity.AttemptResult {
	ctx, span := s.ins.Tracer("webhook.outbound.sender").Start(ctx, "Send",
		trace.WithAttributes(
			attribute.String("webhook.delivery_id", delivery.ID),
			attribute.String("webhook.event", delivery.Event),
		))
	defer span.End()

	body, err := signing.Canonical(delivery.Payload)
	if err != nil {
		return s.fail(span, "encode payload: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook.URL, bytes.NewReader(body))
	if err != nil {
		return s.fail(span, "build request: "+err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerSignature, signing.SignBytes(body, hook.Secret))
	req.Header.Set(headerEvent, delivery.Event)
	req.Header.Set(headerID, delivery.ID)

	resp, err := s.client.Do(req)
	if err != nil {
		return s.fail(span, err.Error())
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	return entity.AttemptResult{
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Response: entity.Response{
			Status:     resp.StatusCode,
			StatusText: resp.Status,
		},
	}
}

func (s *Sender) fail(span trace.Span, reason string) entity.AttemptResult {
	span.SetStatus(codes.Error, reason)

	return entity.AttemptResult{
		Response: entity.Response{Error: reason},
	}
}
