package jwt

import (
	"errors"
	"strconv"
	"time"

	libjwt "github.com/golang-jwt/jwt/v5"
)

// HS512 implements JWT with a symmetric HMAC-SHA512 key.
type HS512 struct {
	secret    []byte
	issuer    string
	audiences []string
	ttl       time.Duration
	clock     clocker
	tokenID   generator
}

// NewHS512 constructs an HS512 signer, rejecting keys under 512 bits.
func NewHS512(cfg Config) (*HS512, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}

	return &HS512{
		secret:    cfg.Secret,
		issuer:    cfg.Issuer,
		audiences: cfg.Audiences,
		ttl:       cfg.TTL,
		clock:     cfg.Clock,
		tokenID:   cfg.TokenID,
	}, nil
}

// Generate creates a signed token for the admin account.
func (h *HS512) Generate(adminID int64, email string) (string, error) {
	now := h.clock.Now()

	return libjwt.NewWithClaims(libjwt.SigningMethodHS512, Claims{
		RegisteredClaims: libjwt.RegisteredClaims{
			ID:        h.tokenID.Generate(),
			Subject:   strconv.FormatInt(adminID, 10),
			Issuer:    h.issuer,
			Audience:  h.audiences,
			IssuedAt:  libjwt.NewNumericDate(now),
			NotBefore: libjwt.NewNumericDate(now),
			ExpiresAt: libjwt.NewNumericDate(now.Add(h.ttl)),
		},
		AdminID: adminID,
		Email:   email,
	}).SignedString(h.secret)
}

// Verify parses and validates a token string.
func (h *HS512) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := libjwt.ParseWithClaims(token, &claims,
		func(t *libjwt.Token) (any, error) {
			if t.Method != libjwt.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}

			return h.secret, nil
		},
		libjwt.WithIssuer(h.issuer),
		libjwt.WithAudience(h.audiences...),
		libjwt.WithValidMethods([]string{libjwt.SigningMethodHS512.Alg()}),
		libjwt.WithIssuedAt(),
		libjwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, libjwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}

		return Claims{}, err
	}

	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
