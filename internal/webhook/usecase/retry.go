package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/webhook/entity"
)

type RetryInput struct {
	DeliveryID string `validate:"required,max=64"`
}

// Retry re-attempts a delivery synchronously. Once the attempt ceiling is
// reached the delivery is frozen and every further retry is rejected.
func (s *Usecase) Retry(ctx context.Context, in RetryInput) (*entity.Delivery, error) {
	ctx, span := s.startSpan(ctx, "Retry")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	delivery, err := s.repoDB.GetDeliveryByID(ctx, in.DeliveryID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("delivery not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get delivery", "delivery_id", in.DeliveryID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if delivery.Exhausted() {
		return nil, goerror.NewBusiness(entity.ErrMaxAttempts.Error(), goerror.CodeExhausted)
	}

	hook, err := s.repoDB.GetWebhookByID(ctx, delivery.WebhookID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("webhook not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get webhook", "webhook_id", delivery.WebhookID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.attempt(ctx, *hook, *delivery); err != nil {
		return nil, goerror.NewServer(err)
	}

	updated, err := s.repoDB.GetDeliveryByID(ctx, in.DeliveryID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reload delivery", "delivery_id", in.DeliveryID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return updated, nil
}
