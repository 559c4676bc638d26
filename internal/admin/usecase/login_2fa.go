package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/mfa"
)

type Login2FAInput struct {
	ChallengeToken string           `validate:"required"`
	Method         entity.MFAMethod `validate:"required,oneof=totp backup_code"`
	Code           string           `validate:"required"`
}

type Login2FAOutput struct {
	AccessToken string
}

func (s *Usecase) Login2FA(ctx context.Context, in Login2FAInput) (*Login2FAOutput, error) {
	ctx, span := s.startSpan(ctx, "Login2FA")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cu, err := s.loadChallengeAdmin(ctx, in.ChallengeToken, entity.ChallengePurposeMFALogin)
	if err != nil {
		return nil, err
	}

	switch in.Method {
	case entity.MFAMethodTOTP:
		if err := s.verifyTOTP(ctx, cu, in.Code); err != nil {
			return nil, err
		}
	case entity.MFAMethodBackupCode:
		if err := s.verifyBackupCode(ctx, cu.AdminID, in.Code); err != nil {
			return nil, err
		}
	}

	if err := s.repoDB.DeleteChallenge(ctx, cu.ChallengeID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete challenge", "challenge_id", cu.ChallengeID, "error", err)
		return nil, goerror.NewServer(err)
	}

	acToken, err := s.jwt.Generate(cu.AdminID, cu.AdminEmail)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "admin_id", cu.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &Login2FAOutput{AccessToken: acToken}, nil
}

func (s *Usecase) verifyTOTP(ctx context.Context, cu *entity.ChallengeAdmin, code string) error {
	if !cu.TOTPEnabled || len(cu.TOTPSecret) == 0 {
		slog.WarnContext(ctx, "totp factor not enrolled", "admin_id", cu.AdminID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	secretBytes, err := s.mfaEncryptor.Decrypt(cu.TOTPSecret, mfa.Scope{
		AdminID: cu.AdminID,
		Purpose: mfa.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "admin_id", cu.AdminID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.totp.Validate(code, string(secretBytes), s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code", "admin_id", cu.AdminID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	return nil
}

func (s *Usecase) verifyBackupCode(ctx context.Context, adminID int64, code string) error {
	codes, err := s.repoDB.ListBackupCodes(ctx, adminID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list backup codes", "admin_id", adminID, "error", err)
		return goerror.NewServer(err)
	}

	var matched *entity.BackupCode
	for i := range codes {
		if s.sha.Verify(codes[i].CodeHash, strings.ToUpper(code)) {
			matched = &codes[i]
			break
		}
	}

	if matched == nil {
		slog.WarnContext(ctx, "backup code not match", "admin_id", adminID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	consumed, err := s.repoDB.ConsumeBackupCode(ctx, matched.ID, adminID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume backup code", "admin_id", adminID, "error", err)
		return goerror.NewServer(err)
	}
	if !consumed {
		slog.WarnContext(ctx, "backup code already used", "admin_id", adminID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	return nil
}
