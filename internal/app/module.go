package app

import (
	"log/slog"
	"os"

	"github.com/danargo/sitegate/internal/admin"
	"github.com/danargo/sitegate/internal/intake"
	"github.com/danargo/sitegate/internal/webhook"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.intake.enabled") {
		if err := intake.New(intake.Dependency{
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
			Router:      a.router,
			Idempotency: a.idemp,
		}); err != nil {
			slog.Error("failed to init module intake", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.admin.enabled") {
		if err := admin.New(admin.Dependency{
			DBConn:       a.dbConn,
			CacheConn:    a.cacheConn,
			Mail:         a.mail,
			Router:       a.router,
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			OID:          a.xid,
			Clock:        a.clock,
			Validator:    a.validator,
			JWT:          a.jwt,
			Password:     a.password,
			HMAC:         a.hmac,
			SHA:          a.sha,
			TOTP:         a.totp,
			Numeric:      a.numeric,
			Backup:       a.backup,
			MFAEncryptor: a.mfaEncryptor,
		}); err != nil {
			slog.Error("failed to init module admin", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.webhook.enabled") {
		if err := webhook.New(webhook.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			XID:        a.xid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module webhook", "error", err)
			os.Exit(1)
		}
	}
}
