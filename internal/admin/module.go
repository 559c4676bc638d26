// Package admin wires the back-office authentication module: password and
// OAuth sign-in, TOTP enrollment and step-up, backup codes, and email
// ownership verification.
package admin

import (
	"github.com/danargo/sitegate/internal/admin/inbound"
	"github.com/danargo/sitegate/internal/admin/outbound/cache"
	"github.com/danargo/sitegate/internal/admin/outbound/db"
	"github.com/danargo/sitegate/internal/admin/outbound/email"
	"github.com/danargo/sitegate/internal/admin/outbound/oauth"
	"github.com/danargo/sitegate/internal/admin/usecase"
	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/hash"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/jwt"
	"github.com/danargo/sitegate/internal/pkg/mail"
	"github.com/danargo/sitegate/internal/pkg/mfa"
	"github.com/danargo/sitegate/internal/pkg/otp"
	"github.com/danargo/sitegate/internal/pkg/router"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	CacheConn    *redis.Client              `validate:"required"`
	Mail         mail.Mail                  `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	OID          uid.StringID               `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	JWT          jwt.JWT                    `validate:"required"`
	Password     hash.Hash                  `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	SHA          hash.Hash                  `validate:"required"`
	TOTP         otp.OTP                    `validate:"required"`
	Numeric      otp.NumericCodeGenerator   `validate:"required"`
	Backup       mfa.BackupCodeGenerator    `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAdmin := db.NewDB(dep.DBConn, dep.Instrument)
	repoCache := cache.New(dep.CacheConn, dep.Instrument)
	repoEmail := email.New(dep.Mail, dep.Instrument)

	oauthClient := oauth.New(oauth.Config{
		ClientID:     dep.Config.GetString("modules.admin.oauth.client_id"),
		ClientSecret: dep.Config.GetString("modules.admin.oauth.client_secret"),
		RedirectURL:  dep.Config.GetString("modules.admin.oauth.redirect_url"),
		AuthURL:      dep.Config.GetString("modules.admin.oauth.auth_url"),
		TokenURL:     dep.Config.GetString("modules.admin.oauth.token_url"),
		UserInfoURL:  dep.Config.GetString("modules.admin.oauth.userinfo_url"),
		Scopes:       dep.Config.GetArray("modules.admin.oauth.scopes"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:       dbAdmin,
		RepoCache:    repoCache,
		RepoEmail:    repoEmail,
		OAuth:        oauthClient,
		Validator:    dep.Validator,
		Config:       dep.Config,
		UID:          dep.UID,
		OID:          dep.OID,
		Clock:        dep.Clock,
		Instrument:   dep.Instrument,
		JWT:          dep.JWT,
		Password:     dep.Password,
		HMAC:         dep.HMAC,
		SHA:          dep.SHA,
		TOTP:         dep.TOTP,
		Numeric:      dep.Numeric,
		Backup:       dep.Backup,
		MFAEncryptor: dep.MFAEncryptor,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
