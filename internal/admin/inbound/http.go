package inbound

import (
	"github.com/danargo/sitegate/internal/pkg/ratelimit"
	"github.com/danargo/sitegate/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/admin/login", end.Login, r.Throttle("auth", ratelimit.PolicyAuth))
	r.POST("/api/v1/admin/login/2fa", end.Login2FA, r.Throttle("auth", ratelimit.PolicyAuth))
	r.POST("/api/v1/admin/login/oauth", end.LoginOAuth, r.Throttle("auth", ratelimit.PolicyAuth))

	r.POST("/api/v1/admin/totp/setup", end.TOTPSetup)
	r.POST("/api/v1/admin/totp/confirm", end.TOTPConfirm)
	r.POST("/api/v1/admin/backup-codes", end.BackupCodeRegenerate)

	r.POST("/api/v1/admin/code/send", end.CodeSend)
	r.POST("/api/v1/admin/code/verify", end.CodeVerify)
}
