package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/jwt"
	"github.com/danargo/sitegate/internal/pkg/mfa"
)

type TOTPConfirmInput struct {
	ChallengeToken string `validate:"required"`
	Code           string `validate:"required,len=6,numeric"`
}

// TOTPConfirm completes enrollment: a valid code proves the authenticator
// holds the secret, so the encrypted secret moves from the challenge onto
// the admin row and the challenge is deleted.
func (s *Usecase) TOTPConfirm(ctx context.Context, in TOTPConfirmInput) error {
	ctx, span := s.startSpan(ctx, "TOTPConfirm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	cu, err := s.loadChallengeAdmin(ctx, in.ChallengeToken, entity.ChallengePurposeTOTPConfirm)
	if err != nil {
		return err
	}

	if cu.AdminID != clm.AdminID {
		slog.WarnContext(ctx, "challenge admin mismatch", "admin_id", clm.AdminID, "challenge_admin_id", cu.AdminID)
		return goerror.NewBusiness("invalid challenge session", goerror.CodeUnauthorized)
	}

	if cu.TOTPEnabled {
		return goerror.NewBusiness("a verified TOTP factor already exists", goerror.CodeConflict)
	}

	secretEncoded := cu.ChallengeMetadata.GetString("secret")
	if secretEncoded == "" {
		slog.WarnContext(ctx, "challenge missing totp secret", "admin_id", cu.AdminID, "challenge_id", cu.ChallengeID)
		return goerror.NewBusiness("invalid challenge session", goerror.CodeUnauthorized)
	}

	secretCiphertext, err := base64.StdEncoding.DecodeString(secretEncoded)
	if err != nil {
		slog.WarnContext(ctx, "challenge totp secret decode failed", "admin_id", cu.AdminID, "error", err)
		return goerror.NewBusiness("invalid challenge session", goerror.CodeUnauthorized)
	}

	secretBytes, err := s.mfaEncryptor.Decrypt(secretCiphertext, mfa.Scope{
		AdminID: cu.AdminID,
		Purpose: mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "admin_id", cu.AdminID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secretBytes), s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code", "admin_id", cu.AdminID, "challenge_id", cu.ChallengeID)
		return goerror.NewBusiness("invalid code session", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.UpdateAdminTOTP(ctx, cu.AdminID, secretCiphertext, true); err != nil {
		slog.ErrorContext(ctx, "failed to repo update admin totp", "admin_id", cu.AdminID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.DeleteChallenge(ctx, cu.ChallengeID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete challenge", "challenge_id", cu.ChallengeID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
