package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/jwt"
	"github.com/danargo/sitegate/internal/pkg/mfa"
	"github.com/danargo/sitegate/internal/pkg/valueobject"
)

type TOTPSetupInput struct {
	CurrentPassword string `validate:"required"`
}

type TOTPSetupOutput struct {
	ChallengeToken string
	Key            string
	URI            string
}

// TOTPSetup starts TOTP enrollment for the authenticated admin. The shared
// secret is returned once for the authenticator app; the stored copy lives
// encrypted in the confirmation challenge until TOTPConfirm burns it in.
func (s *Usecase) TOTPSetup(ctx context.Context, in TOTPSetupInput) (*TOTPSetupOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPSetup")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	admin, err := s.repoDB.GetAdminByID(ctx, clm.AdminID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin account not found", "admin_id", clm.AdminID)
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin by id", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(admin.Password, in.CurrentPassword) {
		slog.WarnContext(ctx, "password admin account not match", "admin_id", admin.ID)
		return nil, goerror.NewBusiness("invalid password", goerror.CodeUnauthorized)
	}

	if admin.TOTPEnabled {
		return nil, goerror.NewBusiness("a verified TOTP factor already exists", goerror.CodeConflict)
	}

	secret, uri, err := s.totp.Generate(admin.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	encryptedSecret, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{
		AdminID: admin.ID,
		Purpose: mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	cToken, err := s.issueChallenge(ctx, admin.ID, entity.ChallengePurposeTOTPConfirm,
		valueobject.JSONMap{
			"secret": base64.StdEncoding.EncodeToString(encryptedSecret),
		},
		s.cfg.GetMinute("modules.admin.totp_confirm_ttl_minutes"))
	if err != nil {
		return nil, err
	}

	return &TOTPSetupOutput{
		ChallengeToken: cToken,
		Key:            secret,
		URI:            uri,
	}, nil
}
