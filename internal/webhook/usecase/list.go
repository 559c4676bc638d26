package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/webhook/entity"
)

type ListOutput struct {
	Webhooks []entity.Webhook
}

func (s *Usecase) List(ctx context.Context) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	hooks, err := s.repoDB.ListWebhooks(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list webhooks", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{Webhooks: hooks}, nil
}

type ListDeliveriesInput struct {
	WebhookID int64 `validate:"required,gt=0"`
	Limit     int32 `validate:"gte=0,lte=200"`
}

type ListDeliveriesOutput struct {
	Deliveries []entity.Delivery
}

func (s *Usecase) ListDeliveries(ctx context.Context, in ListDeliveriesInput) (*ListDeliveriesOutput, error) {
	ctx, span := s.startSpan(ctx, "ListDeliveries")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 50
	}

	if _, err := s.repoDB.GetWebhookByID(ctx, in.WebhookID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("webhook not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get webhook", "webhook_id", in.WebhookID, "error", err)
		return nil, goerror.NewServer(err)
	}

	deliveries, err := s.repoDB.ListDeliveriesByWebhook(ctx, in.WebhookID, in.Limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list deliveries", "webhook_id", in.WebhookID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListDeliveriesOutput{Deliveries: deliveries}, nil
}
