package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/webhook/entity"
)

func (s *Usecase) Get(ctx context.Context, id int64) (*entity.Webhook, error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer span.End()

	if id <= 0 {
		return nil, goerror.NewBusiness("webhook not found", goerror.CodeNotFound)
	}

	hook, err := s.repoDB.GetWebhookByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("webhook not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get webhook", "webhook_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return hook, nil
}
