package usecase

import (
	"context"
	"log/slog"

	"github.com/danargo/sitegate/internal/webhook/entity"
)

// attempt performs one delivery attempt and records its outcome. The attempt
// counter and last-attempt timestamp move regardless of the result; only the
// bookkeeping write can fail.
func (s *Usecase) attempt(ctx context.Context, hook entity.Webhook, delivery entity.Delivery) error {
	ctx, span := s.startSpan(ctx, "attempt")
	defer span.End()

	result := s.sender.Send(ctx, hook, delivery)

	now := s.clock.Now()
	delivery.Attempts++
	delivery.LastAttempt = &now
	delivery.Response = result.Response
	if result.Success {
		delivery.Status = entity.DeliveryStatusSuccess
	} else {
		delivery.Status = entity.DeliveryStatusFailed
	}

	if err := s.repoDB.UpdateDeliveryAttempt(ctx, delivery); err != nil {
		slog.ErrorContext(ctx, "failed to repo update delivery attempt",
			"delivery_id", delivery.ID, "webhook_id", hook.ID, "error", err)
		return err
	}

	if !result.Success {
		slog.WarnContext(ctx, "webhook delivery attempt failed",
			"delivery_id", delivery.ID,
			"webhook_id", hook.ID,
			"event", delivery.Event,
			"attempts", delivery.Attempts,
			"status", result.Response.Status,
			"transport_error", result.Response.Error,
		)
	}

	return nil
}
