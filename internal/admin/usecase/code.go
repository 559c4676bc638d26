package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/jwt"
)

type CodeSendOutput struct {
	Email string
}

// CodeSend generates a one-shot numeric code for the authenticated admin and
// mails it to their address. The code lives in the cache under a TTL and is
// consumed on first verification.
func (s *Usecase) CodeSend(ctx context.Context) (*CodeSendOutput, error) {
	ctx, span := s.startSpan(ctx, "CodeSend")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	code, err := s.numeric.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	key := verificationCodeKey(clm.AdminID)
	ttl := s.cfg.GetMinute("modules.admin.verification_code_ttl_minutes")
	if err := s.repoCache.StoreCode(ctx, key, code, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store verification code", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoEmail.SendVerificationCode(ctx, clm.Email, code); err != nil {
		slog.ErrorContext(ctx, "failed to send verification code email", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CodeSendOutput{Email: clm.Email}, nil
}

type CodeVerifyInput struct {
	Code string `validate:"required,len=6,numeric"`
}

// CodeVerify consumes the pending code. The cache read deletes the entry, so
// a wrong guess burns the code and the admin has to request a new one.
func (s *Usecase) CodeVerify(ctx context.Context, in CodeVerifyInput) error {
	ctx, span := s.startSpan(ctx, "CodeVerify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	stored, err := s.repoCache.ConsumeCode(ctx, verificationCodeKey(clm.AdminID))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verification code not found or expired", "admin_id", clm.AdminID)
		return goerror.NewBusiness("invalid or expired code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume verification code", "admin_id", clm.AdminID, "error", err)
		return goerror.NewServer(err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(in.Code)) != 1 {
		slog.WarnContext(ctx, "verification code not match", "admin_id", clm.AdminID)
		return goerror.NewBusiness("invalid or expired code", goerror.CodeUnauthorized)
	}

	return nil
}

func verificationCodeKey(adminID int64) string {
	return fmt.Sprintf("admin:verification_code:%d", adminID)
}
