// Package webhook wires the webhook subscription and delivery module:
// registration CRUD over HTTP, event fan-out from the message bus, signed
// delivery attempts, and manual retries.
package webhook

import (
	"context"
	"time"

	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/goroutine"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/messaging"
	"github.com/danargo/sitegate/internal/pkg/router"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/danargo/sitegate/internal/webhook/inbound"
	"github.com/danargo/sitegate/internal/webhook/outbound/db"
	"github.com/danargo/sitegate/internal/webhook/outbound/sender"
	"github.com/danargo/sitegate/internal/webhook/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	Ctx        context.Context
	DBConn     *pgxpool.Pool
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	UUID       uid.StringID
	XID        uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	dbWebhook := db.NewDB(dep.DBConn, dep.Instrument)

	timeout := time.Duration(dep.Config.GetInt32("modules.webhook.delivery_timeout_seconds")) * time.Second
	repoSender := sender.New(timeout, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbWebhook,
		Sender:     repoSender,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		DID:        dep.XID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
