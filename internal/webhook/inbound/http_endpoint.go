package inbound

import (
	"github.com/danargo/sitegate/internal/pkg/router"
	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/danargo/sitegate/internal/webhook/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterWebhookRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		URL:    req.URL,
		Events: req.Events,
		Secret: req.Secret,
	})
	if err != nil {
		return nil, err
	}

	return RegisterWebhookResponse{ID: out.ID, Events: out.Events}, nil
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	out, err := h.uc.List(r.Context())
	if err != nil {
		return nil, err
	}

	hooks := make([]WebhookResponse, 0, len(out.Webhooks))
	for _, hook := range out.Webhooks {
		hooks = append(hooks, toWebhookResponse(hook))
	}

	return WebhooksResponse{Webhooks: hooks}, nil
}

func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	hook, err := h.uc.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return toWebhookResponse(*hook), nil
}

func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateWebhookRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.Update(r.Context(), usecase.UpdateInput{
		ID:     id,
		URL:    req.URL,
		Events: req.Events,
		Active: req.Active,
	})
}

func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.Delete(r.Context(), usecase.DeleteInput{ID: id})
}

func (h *HTTPEndpoint) ListDeliveries(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ListDeliveries(r.Context(), usecase.ListDeliveriesInput{
		WebhookID: id,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryResponse, 0, len(out.Deliveries))
	for _, d := range out.Deliveries {
		deliveries = append(deliveries, toDeliveryResponse(d))
	}

	return DeliveriesResponse{Deliveries: deliveries}, nil
}

func (h *HTTPEndpoint) RetryDelivery(r *router.Request) (any, error) {
	d, err := h.uc.Retry(r.Context(), usecase.RetryInput{
		DeliveryID: r.GetParam("deliveryID"),
	})
	if err != nil {
		return nil, err
	}

	return toDeliveryResponse(*d), nil
}

func toWebhookResponse(hook entity.Webhook) WebhookResponse {
	return WebhookResponse{
		ID:        hook.ID,
		URL:       hook.URL,
		Events:    hook.Events,
		IsActive:  hook.Active,
		CreatedAt: hook.CreatedAt,
		UpdatedAt: hook.UpdatedAt,
	}
}

func toDeliveryResponse(d entity.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:          d.ID,
		WebhookID:   d.WebhookID,
		Event:       d.Event,
		Payload:     d.Payload,
		Status:      d.Status.String(),
		Attempts:    d.Attempts,
		LastAttempt: d.LastAttempt,
		Response: DeliveryResponseDetail{
			Status:     d.Response.Status,
			StatusText: d.Response.StatusText,
			Error:      d.Response.Error,
		},
		CreatedAt: d.CreatedAt,
	}
}
