// Package jwt issues and verifies the HS512 access tokens guarding the admin
// back-office.
package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when a token uses an unexpected algorithm.
	ErrInvalidSigningMethod = errors.New("jwt: invalid signing method")

	// ErrSigningKeyTooShort is returned when the HS512 key is under 64 bytes.
	ErrSigningKeyTooShort = errors.New("jwt: HS512 key must be at least 64 bytes")

	// ErrTokenExpired is returned for expired tokens.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrInvalidToken is returned for malformed or failed-validation tokens.
	ErrInvalidToken = errors.New("jwt: invalid token")
)

// JWT generates and verifies signed tokens.
type JWT interface {
	// Generate creates a signed token for the admin account.
	Generate(adminID int64, email string) (string, error)
	// Verify parses and validates a token string.
	Verify(token string) (Claims, error)
}

// Claims wraps the registered claims with the admin identity.
type Claims struct {
	jwt.RegisteredClaims

	// AdminID is the authenticated admin account identifier.
	AdminID int64 `json:"admin_id,string"`
	// Email is the authenticated admin email.
	Email string `json:"email"`
}

type authContextKey struct{}

// GetAuth returns the claims stored in ctx by the auth middleware, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(authContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores claims in ctx.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, authContextKey{}, clm)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config holds the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is the iss claim.
	Issuer string
	// Audiences are the accepted aud values.
	Audiences []string
	// TTL is the token lifetime.
	TTL time.Duration
	// Clock supplies the current time.
	Clock clocker
	// TokenID generates jti values.
	TokenID generator
}
