package inbound

import (
	"context"

	"github.com/danargo/sitegate/internal/intake/usecase"
)

type uc interface {
	SubmitContact(ctx context.Context, in usecase.SubmitContactInput) (*usecase.SubmitContactOutput, error)
	SubmitBooking(ctx context.Context, in usecase.SubmitBookingInput) (*usecase.SubmitBookingOutput, error)
	SubscribeNewsletter(ctx context.Context, in usecase.SubscribeNewsletterInput) (*usecase.SubscribeNewsletterOutput, error)
}
