package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/pkg/goerror"
)

type LoginOAuthInput struct {
	Code string `validate:"required"`
}

type LoginOAuthOutput struct {
	AccessToken string
}

// LoginOAuth exchanges an authorization code with the identity provider and
// signs in the matching admin. Accounts are never auto-provisioned; an email
// the provider vouches for still has to exist as an admin here.
func (s *Usecase) LoginOAuth(ctx context.Context, in LoginOAuthInput) (*LoginOAuthOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginOAuth")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	token, err := s.oauth.Exchange(ctx, in.Code)
	if err != nil {
		slog.WarnContext(ctx, "oauth code exchange failed", "error", err)
		return nil, goerror.NewBusiness("oauth sign-in failed", goerror.CodeUnauthorized)
	}

	email, err := s.oauth.FetchEmail(ctx, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch oauth userinfo", "error", err)
		return nil, goerror.NewServer(err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		slog.WarnContext(ctx, "oauth userinfo has no email")
		return nil, goerror.NewBusiness("oauth sign-in failed", goerror.CodeUnauthorized)
	}

	admin, err := s.repoDB.GetAdminByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no admin account for oauth email", "email", email)
		return nil, goerror.NewBusiness("no admin account for this identity", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	acToken, err := s.jwt.Generate(admin.ID, admin.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOAuthOutput{AccessToken: acToken}, nil
}
