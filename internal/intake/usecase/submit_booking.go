package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/idempotency"
)

type SubmitBookingInput struct {
	IdempotencyKey string `validate:"omitempty,max=128"`
	Name           string `validate:"required,max=200"`
	Email          string `validate:"required,email,max=254"`
	Phone          string `validate:"omitempty,max=32"`
	Service        string `validate:"required,max=200"`
	PreferredAt    string `validate:"required,max=64"`
	Notes          string `validate:"omitempty,max=2000"`
}

type SubmitBookingOutput struct {
	ID int64
}

// SubmitBooking stores a booking request and announces it. When the client
// supplies an idempotency key, duplicate submissions within the tracking
// window are rejected instead of double-booked.
func (s *Usecase) SubmitBooking(ctx context.Context, in SubmitBookingInput) (*SubmitBookingOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitBooking")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Service = strings.TrimSpace(in.Service)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	booking := entity.Booking{
		ID:          s.uid.Generate(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Service:     in.Service,
		PreferredAt: in.PreferredAt,
		Notes:       in.Notes,
		CreatedAt:   s.clock.Now(),
	}

	if in.IdempotencyKey == "" {
		if err := s.createBooking(ctx, booking); err != nil {
			return nil, err
		}
		return &SubmitBookingOutput{ID: booking.ID}, nil
	}

	err := s.idempotency.Run(ctx, "intake:booking:"+in.IdempotencyKey, func(ctx context.Context) error {
		return s.createBooking(ctx, booking)
	})
	switch {
	case errors.Is(err, idempotency.ErrInProgress):
		return nil, goerror.NewBusiness("booking request is already being processed", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrCompleted):
		return nil, goerror.NewBusiness("booking request was already submitted", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrFailed):
		return nil, goerror.NewBusiness("previous booking request failed, use a new idempotency key", goerror.CodeConflict)
	case err != nil:
		var gErr *goerror.Error
		if errors.As(err, &gErr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to track booking idempotency", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SubmitBookingOutput{ID: booking.ID}, nil
}

func (s *Usecase) createBooking(ctx context.Context, booking entity.Booking) error {
	if err := s.repoDB.CreateBooking(ctx, booking); err != nil {
		slog.ErrorContext(ctx, "failed to repo create booking", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMQ.PublishBookingSubmitted(ctx, booking); err != nil {
		slog.WarnContext(ctx, "failed to publish booking submitted event", "booking_id", booking.ID, "error", err)
	}

	return nil
}
