package usecase

import (
	"context"
	"log/slog"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/valueobject"
	"github.com/danargo/sitegate/internal/webhook/entity"
)

type DispatchInput struct {
	Event   string              `validate:"required,max=100"`
	Payload valueobject.JSONMap `validate:"required"`
}

// Dispatch fans an event out to every active webhook subscribed to it. Each
// match gets its own pending delivery record, attempted once in the
// background; delivery failures never fail the dispatch.
func (s *Usecase) Dispatch(ctx context.Context, in DispatchInput) error {
	ctx, span := s.startSpan(ctx, "Dispatch")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	hooks, err := s.repoDB.ListActiveWebhooksByEvent(ctx, in.Event)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list webhooks by event", "event", in.Event, "error", err)
		return goerror.NewServer(err)
	}

	for _, hook := range hooks {
		delivery := entity.Delivery{
			ID:        s.did.Generate(),
			WebhookID: hook.ID,
			Event:     in.Event,
			Payload:   in.Payload,
			Status:    entity.DeliveryStatusPending,
			CreatedAt: s.clock.Now(),
		}

		if err := s.repoDB.CreateDelivery(ctx, delivery); err != nil {
			slog.ErrorContext(ctx, "failed to repo create delivery",
				"webhook_id", hook.ID, "event", in.Event, "error", err)
			continue
		}

		hook := hook
		s.goroutine.Go(ctx, func(ctx context.Context) error {
			return s.attempt(ctx, hook, delivery)
		})
	}

	return nil
}
