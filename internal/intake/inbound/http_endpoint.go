package inbound

import (
	"github.com/danargo/sitegate/internal/intake/usecase"
	"github.com/danargo/sitegate/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) SubmitContact(r *router.Request) (any, error) {
	var req SubmitContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.SubmitContact(r.Context(), usecase.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return nil, err
	}

	return SubmitContactResponse{ID: out.ID}, nil
}

func (h *HTTPEndpoint) SubmitBooking(r *router.Request) (any, error) {
	var req SubmitBookingRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	key := req.IdempotencyKey
	if hk := r.Header.Get("Idempotency-Key"); hk != "" {
		key = hk
	}

	out, err := h.uc.SubmitBooking(r.Context(), usecase.SubmitBookingInput{
		IdempotencyKey: key,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Service:        req.Service,
		PreferredAt:    req.PreferredAt,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}

	return SubmitBookingResponse{ID: out.ID}, nil
}

func (h *HTTPEndpoint) SubscribeNewsletter(r *router.Request) (any, error) {
	var req SubscribeNewsletterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.SubscribeNewsletter(r.Context(), usecase.SubscribeNewsletterInput{
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return SubscribeNewsletterResponse{ID: out.ID}, nil
}
