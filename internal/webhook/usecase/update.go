package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/pkg/goerror"
)

type UpdateInput struct {
	ID     int64    `validate:"required,gt=0"`
	URL    string   `validate:"omitempty,url,max=2048"`
	Events []string `validate:"omitempty,min=1,dive,required,max=100"`
	Active *bool
}

// Update patches a webhook's URL, event list, or active flag. Nil / empty
// fields keep their current value.
func (s *Usecase) Update(ctx context.Context, in UpdateInput) error {
	ctx, span := s.startSpan(ctx, "Update")
	defer span.End()

	in.URL = strings.TrimSpace(in.URL)
	if len(in.Events) > 0 {
		in.Events = normalizeEvents(in.Events)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	hook, err := s.repoDB.GetWebhookByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("webhook not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get webhook", "webhook_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if in.URL != "" {
		hook.URL = in.URL
	}
	if len(in.Events) > 0 {
		hook.Events = in.Events
	}
	if in.Active != nil {
		hook.Active = *in.Active
	}
	hook.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateWebhook(ctx, *hook); err != nil {
		slog.ErrorContext(ctx, "failed to repo update webhook", "webhook_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type DeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) Delete(ctx context.Context, in DeleteInput) error {
	ctx, span := s.startSpan(ctx, "Delete")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeleteWebhook(ctx, in.ID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("webhook not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo delete webhook", "webhook_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
