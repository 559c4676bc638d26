package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	MfaRequired      bool
	ChallengeToken   string
	AvailableMethods []string
	//
	AccessToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	admin, err := s.repoDB.GetAdminByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin account not found", "email", email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(admin.Password, in.Password) {
		slog.WarnContext(ctx, "password admin account not match", "admin_id", admin.ID)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}

	if admin.TOTPEnabled {
		cToken, err := s.issueChallenge(ctx, admin.ID, entity.ChallengePurposeMFALogin, nil,
			s.cfg.GetMinute("modules.admin.mfa_login_ttl_minutes"))
		if err != nil {
			return nil, err
		}

		return &LoginOutput{
			MfaRequired:      true,
			ChallengeToken:   cToken,
			AvailableMethods: []string{string(entity.MFAMethodTOTP), string(entity.MFAMethodBackupCode)},
		}, nil
	}

	acToken, err := s.jwt.Generate(admin.ID, admin.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: acToken}, nil
}
