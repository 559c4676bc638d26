package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
)

type SubmitContactInput struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email,max=254"`
	Subject string `validate:"required,max=200"`
	Message string `validate:"required,max=5000"`
}

type SubmitContactOutput struct {
	ID int64
}

func (s *Usecase) SubmitContact(ctx context.Context, in SubmitContactInput) (*SubmitContactOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitContact")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sub := entity.ContactSubmission{
		ID:        s.uid.Generate(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreateContactSubmission(ctx, sub); err != nil {
		slog.ErrorContext(ctx, "failed to repo create contact submission", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMQ.PublishContactSubmitted(ctx, sub); err != nil {
		// Submission is already stored; the event is best effort.
		slog.WarnContext(ctx, "failed to publish contact submitted event", "submission_id", sub.ID, "error", err)
	}

	return &SubmitContactOutput{ID: sub.ID}, nil
}
