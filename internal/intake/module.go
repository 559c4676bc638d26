// Package intake wires the public site intake module: contact form, booking
// requests, and newsletter signups, each persisted and announced on the
// message bus.
package intake

import (
	"github.com/danargo/sitegate/internal/intake/inbound"
	"github.com/danargo/sitegate/internal/intake/outbound/db"
	"github.com/danargo/sitegate/internal/intake/outbound/mq"
	"github.com/danargo/sitegate/internal/intake/usecase"
	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/idempotency"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/messaging"
	"github.com/danargo/sitegate/internal/pkg/router"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Config      config.Config
	Instrument  instrument.Instrumentation
	UID         uid.NumberID
	Clock       clock.Clocker
	Validator   validator.Validator
	Router      *router.Router
	Idempotency idempotency.Idempotency
}

func New(dep Dependency) error {
	dbIntake := db.NewDB(dep.DBConn, dep.Instrument)
	repoMQ := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:      dbIntake,
		RepoMQ:      repoMQ,
		Validator:   dep.Validator,
		Config:      dep.Config,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
		Idempotency: dep.Idempotency,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
