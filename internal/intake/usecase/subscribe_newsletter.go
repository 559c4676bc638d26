package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
)

type SubscribeNewsletterInput struct {
	Email string `validate:"required,email,max=254"`
}

type SubscribeNewsletterOutput struct {
	ID int64
}

// SubscribeNewsletter records a signup. Re-subscribing an existing address is
// treated as success so the form never leaks which addresses are subscribed.
func (s *Usecase) SubscribeNewsletter(ctx context.Context, in SubscribeNewsletterInput) (*SubscribeNewsletterOutput, error) {
	ctx, span := s.startSpan(ctx, "SubscribeNewsletter")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sub := entity.Subscriber{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return &SubscribeNewsletterOutput{ID: sub.ID}, nil
		}
		slog.ErrorContext(ctx, "failed to repo create subscriber", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMQ.PublishNewsletterSubscribed(ctx, sub); err != nil {
		slog.WarnContext(ctx, "failed to publish newsletter subscribed event", "subscriber_id", sub.ID, "error", err)
	}

	return &SubscribeNewsletterOutput{ID: sub.ID}, nil
}
