package app

import (
	"context"
	"net/http"

	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/goroutine"
	"github.com/danargo/sitegate/internal/pkg/hash"
	"github.com/danargo/sitegate/internal/pkg/idempotency"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/jwt"
	"github.com/danargo/sitegate/internal/pkg/mail"
	"github.com/danargo/sitegate/internal/pkg/messaging"
	"github.com/danargo/sitegate/internal/pkg/mfa"
	"github.com/danargo/sitegate/internal/pkg/otp"
	"github.com/danargo/sitegate/internal/pkg/ratelimit"
	"github.com/danargo/sitegate/internal/pkg/router"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine    *goroutine.Manager
	validator    validator.Validator
	clock        clock.Clocker
	hmac         hash.Hash
	sha          hash.Hash
	password     hash.Hash
	uid          uid.NumberID
	uuid         uid.StringID
	xid          uid.StringID
	totp         otp.OTP
	numeric      otp.NumericCodeGenerator
	backup       mfa.BackupCodeGenerator
	jwt          jwt.JWT
	mfaEncryptor mfa.Encryptor

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	limiter   *ratelimit.Limiter

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initRateLimit()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
