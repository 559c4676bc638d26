package inbound

import (
	"context"

	"github.com/danargo/sitegate/internal/admin/usecase"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Login2FA(ctx context.Context, in usecase.Login2FAInput) (*usecase.Login2FAOutput, error)
	LoginOAuth(ctx context.Context, in usecase.LoginOAuthInput) (*usecase.LoginOAuthOutput, error)
	TOTPSetup(ctx context.Context, in usecase.TOTPSetupInput) (*usecase.TOTPSetupOutput, error)
	TOTPConfirm(ctx context.Context, in usecase.TOTPConfirmInput) error
	BackupCodeRegenerate(ctx context.Context, in usecase.BackupCodeRegenerateInput) (*usecase.BackupCodeRegenerateOutput, error)
	CodeSend(ctx context.Context) (*usecase.CodeSendOutput, error)
	CodeVerify(ctx context.Context, in usecase.CodeVerifyInput) error
}
