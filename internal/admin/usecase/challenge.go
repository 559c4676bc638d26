package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/valueobject"
)

// issueChallenge creates a challenge row and returns the opaque token handed
// to the client. Only the HMAC of the token is stored.
func (s *Usecase) issueChallenge(
	ctx context.Context,
	adminID int64,
	purpose entity.ChallengePurpose,
	metadata valueobject.JSONMap,
	ttl time.Duration,
) (string, error) {
	cToken := s.oid.Generate()

	cTokenHash, err := s.hmac.Hash(cToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash challenge token", "error", err)
		return "", goerror.NewServer(err)
	}

	if err := s.repoDB.CreateChallenge(ctx, entity.Challenge{
		ID:        s.uid.Generate(),
		AdminID:   adminID,
		Token:     string(cTokenHash),
		Purpose:   purpose,
		Metadata:  metadata,
		ExpiresAt: s.clock.Now().Add(ttl),
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create challenge", "admin_id", adminID, "error", err)
		return "", goerror.NewServer(err)
	}

	return cToken, nil
}

// loadChallengeAdmin resolves a client-held challenge token to its admin,
// rejecting unknown and expired challenges alike.
func (s *Usecase) loadChallengeAdmin(ctx context.Context, token string, purpose entity.ChallengePurpose) (*entity.ChallengeAdmin, error) {
	cTokenHash, err := s.hmac.Hash(token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash challenge token", "error", err)
		return nil, goerror.NewServer(err)
	}

	cu, err := s.repoDB.GetChallengeAdminByTokenPurpose(ctx, string(cTokenHash), purpose)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "challenge not found", "purpose", purpose.String())
		return nil, goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get challenge by token purpose", "purpose", purpose.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	if s.clock.Now().After(cu.ExpiresAt) {
		slog.WarnContext(ctx, "challenge expired", "challenge_id", cu.ChallengeID, "admin_id", cu.AdminID)
		return nil, goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	return cu, nil
}
