package usecase

import (
	"context"
	"time"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/hash"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/jwt"
	"github.com/danargo/sitegate/internal/pkg/mfa"
	"github.com/danargo/sitegate/internal/pkg/otp"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"golang.org/x/oauth2"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
	GetAdminByID(ctx context.Context, id int64) (*entity.Admin, error)
	UpdateAdminTOTP(ctx context.Context, adminID int64, secret []byte, enabled bool) error

	CreateChallenge(ctx context.Context, ch entity.Challenge) error
	GetChallengeAdminByTokenPurpose(ctx context.Context, tokenHash string, purpose entity.ChallengePurpose) (*entity.ChallengeAdmin, error)
	DeleteChallenge(ctx context.Context, id int64) error

	ReplaceBackupCodes(ctx context.Context, adminID int64, codeHashes []string) error
	ListBackupCodes(ctx context.Context, adminID int64) ([]entity.BackupCode, error)
	ConsumeBackupCode(ctx context.Context, id, adminID int64) (bool, error)
}

type repoCache interface {
	StoreCode(ctx context.Context, key, code string, ttl time.Duration) error
	ConsumeCode(ctx context.Context, key string) (string, error)
}

type repoEmail interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// oauthExchanger is the subset of the OAuth2 flow the login needs: code
// exchange plus an authenticated userinfo fetch.
type oauthExchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchEmail(ctx context.Context, token *oauth2.Token) (string, error)
}

type Usecase struct {
	repoDB       repoDB
	repoCache    repoCache
	repoEmail    repoEmail
	oauth        oauthExchanger
	validator    validator.Validator
	cfg          config.Config
	uid          uid.NumberID
	oid          uid.StringID
	clock        clock.Clocker
	ins          instrument.Instrumentation
	jwt          jwt.JWT
	password     hash.Hash
	hmac         hash.Hash
	sha          hash.Hash
	totp         otp.OTP
	numeric      otp.NumericCodeGenerator
	backup       mfa.BackupCodeGenerator
	mfaEncryptor mfa.Encryptor
}

type Dependency struct {
	RepoDB       repoDB
	RepoCache    repoCache
	RepoEmail    repoEmail
	OAuth        oauthExchanger
	Validator    validator.Validator
	Config       config.Config
	UID          uid.NumberID
	OID          uid.StringID
	Clock        clock.Clocker
	Instrument   instrument.Instrumentation
	JWT          jwt.JWT
	Password     hash.Hash
	HMAC         hash.Hash
	SHA          hash.Hash
	TOTP         otp.OTP
	Numeric      otp.NumericCodeGenerator
	Backup       mfa.BackupCodeGenerator
	MFAEncryptor mfa.Encryptor
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:       dep.RepoDB,
		repoCache:    dep.RepoCache,
		repoEmail:    dep.RepoEmail,
		oauth:        dep.OAuth,
		validator:    dep.Validator,
		cfg:          dep.Config,
		uid:          dep.UID,
		oid:          dep.OID,
		clock:        dep.Clock,
		ins:          dep.Instrument,
		jwt:          dep.JWT,
		password:     dep.Password,
		hmac:         dep.HMAC,
		sha:          dep.SHA,
		totp:         dep.TOTP,
		numeric:      dep.Numeric,
		backup:       dep.Backup,
		mfaEncryptor: dep.MFAEncryptor,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("admin.usecase").Start(ctx, name)
}
