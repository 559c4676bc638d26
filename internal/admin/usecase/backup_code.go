package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/jwt"
)

type BackupCodeRegenerateInput struct {
	CurrentPassword string `validate:"required"`
}

type BackupCodeRegenerateOutput struct {
	Codes []string
}

// BackupCodeRegenerate replaces the admin's recovery codes. The plaintext
// codes appear in the response exactly once; only their SHA-256 digests are
// stored, and any unused old codes stop working.
func (s *Usecase) BackupCodeRegenerate(ctx context.Context, in BackupCodeRegenerateInput) (*BackupCodeRegenerateOutput, error) {
	ctx, span := s.startSpan(ctx, "BackupCodeRegenerate")
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

	if !admin.TOTPEnabled {
		return nil, goerror.NewBusiness("TOTP must be enrolled before generating backup codes", goerror.CodeConflict)
	}

	codes, err := s.backup.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate backup codes", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashes := make([]string, 0, len(codes))
	for _, code := range codes {
		digest, err := s.sha.Hash(code)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash backup code", "admin_id", admin.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		hashes = append(hashes, string(digest))
	}

	if err := s.repoDB.ReplaceBackupCodes(ctx, admin.ID, hashes); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace backup codes", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &BackupCodeRegenerateOutput{Codes: codes}, nil
}
