package inbound

import (
	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/danargo/sitegate/internal/admin/usecase"
	"github.com/danargo/sitegate/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken:      out.AccessToken,
		MfaRequired:      out.MfaRequired,
		ChallengeToken:   out.ChallengeToken,
		AvailableMethods: out.AvailableMethods,
	}, nil
}

func (h *HTTPEndpoint) Login2FA(r *router.Request) (any, error) {
	var req Login2FARequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Login2FA(r.Context(), usecase.Login2FAInput{
		ChallengeToken: req.ChallengeToken,
		Method:         entity.MFAMethod(req.Method),
		Code:           req.Code,
	})
	if err != nil {
		return nil, err
	}

	return Login2FAResponse{AccessToken: out.AccessToken}, nil
}

func (h *HTTPEndpoint) LoginOAuth(r *router.Request) (any, error) {
	var req LoginOAuthRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.LoginOAuth(r.Context(), usecase.LoginOAuthInput{Code: req.Code})
	if err != nil {
		return nil, err
	}

	return Login2FAResponse{AccessToken: out.AccessToken}, nil
}

func (h *HTTPEndpoint) TOTPSetup(r *router.Request) (any, error) {
	var req TOTPSetupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.TOTPSetup(r.Context(), usecase.TOTPSetupInput{
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		return nil, err
	}

	return TOTPSetupResponse{
		ChallengeToken: out.ChallengeToken,
		Key:            out.Key,
		URI:            out.URI,
	}, nil
}

func (h *HTTPEndpoint) TOTPConfirm(r *router.Request) (any, error) {
	var req TOTPConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.TOTPConfirm(r.Context(), usecase.TOTPConfirmInput{
		ChallengeToken: req.ChallengeToken,
		Code:           req.Code,
	})
	if err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) BackupCodeRegenerate(r *router.Request) (any, error) {
	var req BackupCodeRegenerateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.BackupCodeRegenerate(r.Context(), usecase.BackupCodeRegenerateInput{
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		return nil, err
	}

	return BackupCodeRegenerateResponse{Codes: out.Codes}, nil
}

func (h *HTTPEndpoint) CodeSend(r *router.Request) (any, error) {
	out, err := h.uc.CodeSend(r.Context())
	if err != nil {
		return nil, err
	}

	return CodeSendResponse{Email: out.Email}, nil
}

func (h *HTTPEndpoint) CodeVerify(r *router.Request) (any, error) {
	var req CodeVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.CodeVerify(r.Context(), usecase.CodeVerifyInput{Code: req.Code}); err != nil {
		return nil, err
	}

	return nil, nil
}
