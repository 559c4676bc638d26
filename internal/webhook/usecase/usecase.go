package usecase

import (
	"context"

	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/goroutine"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/danargo/sitegate/internal/webhook/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoSender interface {
	Send(ctx context.Context, hook entity.Webhook, delivery entity.Delivery) entity.AttemptResult
}

type repoDB interface {
	CreateWebhook(ctx context.Context, hook entity.Webhook) error
	GetWebhookByID(ctx context.Context, id int64) (*entity.Webhook, error)
	ListWebhooks(ctx context.Context) ([]entity.Webhook, error)
	ListActiveWebhooksByEvent(ctx context.Context, event string) ([]entity.Webhook, error)
	UpdateWebhook(ctx context.Context, hook entity.Webhook) error
	DeleteWebhook(ctx context.Context, id int64) error

	CreateDelivery(ctx context.Context, d entity.Delivery) error
	GetDeliveryByID(ctx context.Context, id string) (*entity.Delivery, error)
	ListDeliveriesByWebhook(ctx context.Context, webhookID int64, limit int32) ([]entity.Delivery, error)
	UpdateDeliveryAttempt(ctx context.Context, d entity.Delivery) error
}

type Usecase struct {
	repoDB    repoDB
	sender    repoSender
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	did       uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	RepoDB     repoDB
	Sender     repoSender
	Validator  validator.Validator
	Config     config.Config
	UID        uid.NumberID
	DID        uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		sender:    dep.Sender,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		did:       dep.DID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("webhook.usecase").Start(ctx, name)
}
