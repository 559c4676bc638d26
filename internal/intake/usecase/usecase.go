package usecase

import (
	"context"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/idempotency"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateContactSubmission(ctx context.Context, sub entity.ContactSubmission) error
	CreateBooking(ctx context.Context, booking entity.Booking) error
	CreateSubscriber(ctx context.Context, sub entity.Subscriber) error
}

type repoMessaging interface {
	PublishContactSubmitted(ctx context.Context, sub entity.ContactSubmission) error
	PublishBookingSubmitted(ctx context.Context, booking entity.Booking) error
	PublishNewsletterSubscribed(ctx context.Context, sub entity.Subscriber) error
}

type Usecase struct {
	repoDB      repoDB
	repoMQ      repoMessaging
	validator   validator.Validator
	cfg         config.Config
	uid         uid.NumberID
	clock       clock.Clocker
	ins         instrument.Instrumentation
	idempotency idempotency.Idempotency
}

type Dependency struct {
	RepoDB      repoDB
	RepoMQ      repoMessaging
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Idempotency idempotency.Idempotency
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		repoMQ:      dep.RepoMQ,
		validator:   dep.Validator,
		cfg:         dep.Config,
		uid:         dep.UID,
		clock:       dep.Clock,
		ins:         dep.Instrument,
		idempotency: dep.Idempotency,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("intake.usecase").Start(ctx, name)
}
