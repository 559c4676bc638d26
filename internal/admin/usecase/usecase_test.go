package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/hash"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/jwt"
	"github.com/danargo/sitegate/internal/pkg/mfa"
	"github.com/danargo/sitegate/internal/pkg/otp"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeRepo struct {
	mu          sync.Mutex
	admins      map[int64]entity.Admin
	challenges  map[int64]entity.Challenge
	backupCodes []entity.BackupCode

	createChallengeErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		admins:     map[int64]entity.Admin{},
		challenges: map[int64]entity.Challenge{},
	}
}

func (f *fakeRepo) GetAdminByEmail(_ context.Context, email string) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.admins {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetAdminByID(_ context.Context, id int64) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.admins[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &a, nil
}

func (f *fakeRepo) UpdateAdminTOTP(_ context.Context, adminID int64, secret []byte, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.admins[adminID]
	if !ok {
		return goerror.ErrNotFound
	}
	a.TOTPSecret = secret
	a.TOTPEnabled = enabled
	f.admins[adminID] = a
	return nil
}

func (f *fakeRepo) CreateChallenge(_ context.Context, ch entity.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createChallengeErr != nil {
		return f.createChallengeErr
	}
	f.challenges[ch.ID] = ch
	return nil
}

func (f *fakeRepo) GetChallengeAdminByTokenPurpose(_ context.Context, tokenHash string, purpose entity.ChallengePurpose) (*entity.ChallengeAdmin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.challenges {
		if ch.Token != tokenHash || ch.Purpose != purpose {
			continue
		}
		admin, ok := f.admins[ch.AdminID]
		if !ok {
			return nil, goerror.ErrNotFound
		}
		return &entity.ChallengeAdmin{
			ChallengeID:       ch.ID,
			ChallengeMetadata: ch.Metadata,
			ExpiresAt:         ch.ExpiresAt,
			AdminID:           admin.ID,
			AdminEmail:        admin.Email,
			TOTPSecret:        admin.TOTPSecret,
			TOTPEnabled:       admin.TOTPEnabled,
		}, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) DeleteChallenge(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.challenges, id)
	return nil
}

func (f *fakeRepo) ReplaceBackupCodes(_ context.Context, adminID int64, codeHashes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.backupCodes[:0]
	for _, bc := range f.backupCodes {
		if bc.AdminID != adminID {
			kept = append(kept, bc)
		}
	}
	f.backupCodes = kept

	for i, h := range codeHashes {
		f.backupCodes = append(f.backupCodes, entity.BackupCode{
			ID:       int64(len(f.backupCodes)*100 + i + 1),
			AdminID:  adminID,
			CodeHash: h,
		})
	}
	return nil
}

func (f *fakeRepo) ListBackupCodes(_ context.Context, adminID int64) ([]entity.BackupCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.BackupCode
	for _, bc := range f.backupCodes {
		if bc.AdminID == adminID {
			out = append(out, bc)
		}
	}
	return out, nil
}

func (f *fakeRepo) ConsumeBackupCode(_ context.Context, id, adminID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, bc := range f.backupCodes {
		if bc.ID == id && bc.AdminID == adminID {
			f.backupCodes = append(f.backupCodes[:i], f.backupCodes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeCache struct {
	mu    sync.Mutex
	codes map[string]string
	ttls  map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{codes: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) StoreCode(_ context.Context, key, code string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.codes[key] = code
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) ConsumeCode(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	code, ok := f.codes[key]
	if !ok {
		return "", goerror.ErrNotFound
	}
	delete(f.codes, key)
	return code, nil
}

type sentMail struct {
	to   string
	code string
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeEmail) SendVerificationCode(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentMail{to: to, code: code})
	return nil
}

type fakeOAuth struct {
	exchangeErr error
	fetchErr    error
	email       string
}

func (f *fakeOAuth) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "at-" + code}, nil
}

func (f *fakeOAuth) FetchEmail(_ context.Context, _ *oauth2.Token) (string, error) {
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.email, nil
}

type fakeJWT struct{}

func (fakeJWT) Generate(adminID int64, email string) (string, error) {
	return fmt.Sprintf("token-%d-%s", adminID, email), nil
}

func (fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

// fakeConfig panics on everything except the TTL lookups the module reads.
type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(string) time.Duration {
	return 5 * time.Minute
}

type seqNumberID struct{ n int64 }

func (s *seqNumberID) Generate() int64 {
	s.n++
	return s.n
}

type seqStringID struct{ n int }

func (s *seqStringID) Generate() string {
	s.n++
	return fmt.Sprintf("challenge-token-%d", s.n)
}

type fixture struct {
	uc    *Usecase
	repo  *fakeRepo
	cache *fakeCache
	email *fakeEmail
	oauth *fakeOAuth
	totp  *otp.TOTP
	enc   mfa.Encryptor
	sha   hash.Hash
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	enc, err := mfa.NewAESGCM([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	v, err := validator.NewV10()
	require.NoError(t, err)

	f := &fixture{
		repo:  newFakeRepo(),
		cache: newFakeCache(),
		email: &fakeEmail{},
		oauth: &fakeOAuth{},
		totp:  otp.NewTOTP("SiteGate", 30, 1, 6),
		enc:   enc,
		sha:   hash.NewSHA256(),
		now:   time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC),
	}

	f.uc = New(Dependency{
		RepoDB:       f.repo,
		RepoCache:    f.cache,
		RepoEmail:    f.email,
		OAuth:        f.oauth,
		Validator:    v,
		Config:       fakeConfig{},
		UID:          &seqNumberID{},
		OID:          &seqStringID{},
		Clock:        clock.Static{At: f.now},
		Instrument:   instrument.NewNoop(),
		JWT:          fakeJWT{},
		Password:     hash.NewSHA256(),
		HMAC:         hash.NewHMACSHA256("test-hmac-secret"),
		SHA:          f.sha,
		TOTP:         f.totp,
		Numeric:      otp.NewNumericCode(),
		Backup:       mfa.NewBackupCode(),
		MFAEncryptor: enc,
	})

	return f
}

// seedAdmin stores an admin whose password is SHA-256 hashed, matching the
// fixture's password hasher.
func (f *fixture) seedAdmin(t *testing.T, id int64, email, password string) entity.Admin {
	t.Helper()

	digest, err := hash.NewSHA256().Hash(password)
	require.NoError(t, err)

	admin := entity.Admin{
		ID:       id,
		Email:    email,
		FullName: "Ops Admin",
		Password: string(digest),
	}
	f.repo.admins[id] = admin
	return admin
}

// seedTOTP enrolls a TOTP factor for the admin and returns the plaintext
// secret so tests can mint valid codes.
func (f *fixture) seedTOTP(t *testing.T, adminID int64) string {
	t.Helper()

	admin, ok := f.repo.admins[adminID]
	require.True(t, ok)

	secret, _, err := f.totp.Generate(admin.Email)
	require.NoError(t, err)

	ciphertext, err := f.enc.Encrypt([]byte(secret), mfa.Scope{AdminID: adminID, Purpose: mfa.PurposeOTPSeed})
	require.NoError(t, err)

	admin.TOTPSecret = ciphertext
	admin.TOTPEnabled = true
	f.repo.admins[adminID] = admin
	return secret
}

func authCtx(adminID int64, email string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{AdminID: adminID, Email: email})
}

func TestLogin_PasswordOnly(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "  Ops@Example.COM ",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.False(t, out.MfaRequired)
	assert.Equal(t, "token-1-ops@example.com", out.AccessToken)
	assert.Empty(t, out.ChallengeToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "ops@example.com",
		Password: "wrong",
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestLogin_MFARequired(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.seedTOTP(t, 1)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "ops@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.True(t, out.MfaRequired)
	assert.NotEmpty(t, out.ChallengeToken)
	assert.Empty(t, out.AccessToken)
	assert.Equal(t, []string{"totp", "backup_code"}, out.AvailableMethods)

	// Only the HMAC of the token is at rest.
	require.Len(t, f.repo.challenges, 1)
	for _, ch := range f.repo.challenges {
		assert.NotEqual(t, out.ChallengeToken, ch.Token)
		assert.Equal(t, entity.ChallengePurposeMFALogin, ch.Purpose)
		assert.Equal(t, f.now.Add(5*time.Minute), ch.ExpiresAt)
	}
}

func TestLogin2FA_TOTP(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	secret := f.seedTOTP(t, 1)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "ops@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	code, err := f.totp.GenerateCode(secret, f.now)
	require.NoError(t, err)

	out2, err := f.uc.Login2FA(context.Background(), Login2FAInput{
		ChallengeToken: out.ChallengeToken,
		Method:         entity.MFAMethodTOTP,
		Code:           code,
	})

	require.NoError(t, err)
	assert.Equal(t, "token-1-ops@example.com", out2.AccessToken)
	assert.Empty(t, f.repo.challenges)
}

func TestLogin2FA_WrongTOTPCode(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.seedTOTP(t, 1)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "ops@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = f.uc.Login2FA(context.Background(), Login2FAInput{
		ChallengeToken: out.ChallengeToken,
		Method:         entity.MFAMethodTOTP,
		Code:           "000000",
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	assert.Len(t, f.repo.challenges, 1, "failed attempt keeps the challenge alive")
}

func TestLogin2FA_BackupCodeSingleUse(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.seedTOTP(t, 1)

	regen, err := f.uc.BackupCodeRegenerate(authCtx(1, "ops@example.com"), BackupCodeRegenerateInput{
		CurrentPassword: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, regen.Codes)

	login := func() string {
		out, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "ops@example.com",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		return out.ChallengeToken
	}

	out, err := f.uc.Login2FA(context.Background(), Login2FAInput{
		ChallengeToken: login(),
		Method:         entity.MFAMethodBackupCode,
		Code:           regen.Codes[0],
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	// The same code again, on a fresh challenge, is spent.
	_, err = f.uc.Login2FA(context.Background(), Login2FAInput{
		ChallengeToken: login(),
		Method:         entity.MFAMethodBackupCode,
		Code:           regen.Codes[0],
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestLogin2FA_ExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	secret := f.seedTOTP(t, 1)

	tokenHash, err := hash.NewHMACSHA256("test-hmac-secret").Hash("stale-token")
	require.NoError(t, err)

	f.repo.challenges[99] = entity.Challenge{
		ID:        99,
		AdminID:   1,
		Token:     string(tokenHash),
		Purpose:   entity.ChallengePurposeMFALogin,
		ExpiresAt: f.now.Add(-time.Minute),
	}

	code, err := f.totp.GenerateCode(secret, f.now)
	require.NoError(t, err)

	_, err = f.uc.Login2FA(context.Background(), Login2FAInput{
		ChallengeToken: "stale-token",
		Method:         entity.MFAMethodTOTP,
		Code:           code,
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestTOTPSetupAndConfirm(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	ctx := authCtx(1, "ops@example.com")

	setup, err := f.uc.TOTPSetup(ctx, TOTPSetupInput{CurrentPassword: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Key)
	assert.Contains(t, setup.URI, "otpauth://totp/")
	assert.NotEmpty(t, setup.ChallengeToken)
	assert.False(t, f.repo.admins[1].TOTPEnabled, "enrollment is pending until confirmed")

	code, err := f.totp.GenerateCode(setup.Key, f.now)
	require.NoError(t, err)

	err = f.uc.TOTPConfirm(ctx, TOTPConfirmInput{
		ChallengeToken: setup.ChallengeToken,
		Code:           code,
	})
	require.NoError(t, err)

	admin := f.repo.admins[1]
	assert.True(t, admin.TOTPEnabled)
	assert.Empty(t, f.repo.challenges)

	plain, err := f.enc.Decrypt(admin.TOTPSecret, mfa.Scope{AdminID: 1, Purpose: mfa.PurposeOTPSeed})
	require.NoError(t, err)
	assert.Equal(t, setup.Key, string(plain))
}

func TestTOTPSetup_AlreadyEnrolled(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.seedTOTP(t, 1)

	_, err := f.uc.TOTPSetup(authCtx(1, "ops@example.com"), TOTPSetupInput{CurrentPassword: "s3cret-pass"})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
}

func TestTOTPConfirm_WrongCode(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	ctx := authCtx(1, "ops@example.com")

	setup, err := f.uc.TOTPSetup(ctx, TOTPSetupInput{CurrentPassword: "s3cret-pass"})
	require.NoError(t, err)

	err = f.uc.TOTPConfirm(ctx, TOTPConfirmInput{
		ChallengeToken: setup.ChallengeToken,
		Code:           "000000",
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	assert.False(t, f.repo.admins[1].TOTPEnabled)
}

func TestTOTPConfirm_OtherAdminsChallenge(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.seedAdmin(t, 2, "other@example.com", "other-pass")

	setup, err := f.uc.TOTPSetup(authCtx(1, "ops@example.com"), TOTPSetupInput{CurrentPassword: "s3cret-pass"})
	require.NoError(t, err)

	code, err := f.totp.GenerateCode(setup.Key, f.now)
	require.NoError(t, err)

	err = f.uc.TOTPConfirm(authCtx(2, "other@example.com"), TOTPConfirmInput{
		ChallengeToken: setup.ChallengeToken,
		Code:           code,
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestBackupCodeRegenerate(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.seedTOTP(t, 1)

	out, err := f.uc.BackupCodeRegenerate(authCtx(1, "ops@example.com"), BackupCodeRegenerateInput{
		CurrentPassword: "s3cret-pass",
	})

	require.NoError(t, err)
	require.Len(t, out.Codes, mfa.BackupCodeCount)
	require.Len(t, f.repo.backupCodes, mfa.BackupCodeCount)

	// Digests at rest, never the plaintext.
	for i, code := range out.Codes {
		assert.NotEqual(t, code, f.repo.backupCodes[i].CodeHash)
		assert.True(t, f.sha.Verify(f.repo.backupCodes[i].CodeHash, code))
	}

	// Regeneration revokes the previous batch.
	again, err := f.uc.BackupCodeRegenerate(authCtx(1, "ops@example.com"), BackupCodeRegenerateInput{
		CurrentPassword: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.backupCodes, mfa.BackupCodeCount)
	assert.NotEqual(t, out.Codes, again.Codes)
}

func TestBackupCodeRegenerate_RequiresTOTP(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")

	_, err := f.uc.BackupCodeRegenerate(authCtx(1, "ops@example.com"), BackupCodeRegenerateInput{
		CurrentPassword: "s3cret-pass",
	})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
}

func TestCodeSendAndVerify(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	ctx := authCtx(1, "ops@example.com")

	out, err := f.uc.CodeSend(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", out.Email)

	require.Len(t, f.email.sent, 1)
	assert.Equal(t, "ops@example.com", f.email.sent[0].to)
	code := f.email.sent[0].code
	require.Len(t, code, 6)
	assert.Equal(t, 5*time.Minute, f.cache.ttls["admin:verification_code:1"])

	require.NoError(t, f.uc.CodeVerify(ctx, CodeVerifyInput{Code: code}))

	// The code was consumed on the first read.
	err = f.uc.CodeVerify(ctx, CodeVerifyInput{Code: code})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestCodeVerify_WrongGuessBurnsCode(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	ctx := authCtx(1, "ops@example.com")

	_, err := f.uc.CodeSend(ctx)
	require.NoError(t, err)
	code := f.email.sent[0].code

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}

	err = f.uc.CodeVerify(ctx, CodeVerifyInput{Code: wrong})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())

	// The right code no longer works either.
	err = f.uc.CodeVerify(ctx, CodeVerifyInput{Code: code})
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestLoginOAuth(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, 1, "ops@example.com", "s3cret-pass")
	f.oauth.email = "Ops@Example.com"

	out, err := f.uc.LoginOAuth(context.Background(), LoginOAuthInput{Code: "auth-code"})

	require.NoError(t, err)
	assert.Equal(t, "token-1-ops@example.com", out.AccessToken)
}

func TestLoginOAuth_UnknownIdentity(t *testing.T) {
	f := newFixture(t)
	f.oauth.email = "ghost@example.com"

	_, err := f.uc.LoginOAuth(context.Background(), LoginOAuthInput{Code: "auth-code"})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}

func TestLoginOAuth_ExchangeFails(t *testing.T) {
	f := newFixture(t)
	f.oauth.exchangeErr = fmt.Errorf("provider said no")

	_, err := f.uc.LoginOAuth(context.Background(), LoginOAuthInput{Code: "auth-code"})

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
}
