package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/messaging"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/pkg/valueobject"
	"github.com/danargo/sitegate/internal/shared/event"
	"github.com/danargo/sitegate/internal/webhook/usecase"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) ContactSubmitted(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("webhook.inbound.mq").Start(ctx, "ContactSubmitted")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: contact submitted webhook fan-out", "msg_body", string(body))

	var payload event.ContactSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of contact submitted", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Dispatch(ctx, usecase.DispatchInput{
		Event: event.ContactSubmittedDestination,
		Payload: valueobject.JSONMap{
			"submission_id": payload.SubmissionID,
			"name":          payload.Name,
			"email":         payload.Email,
			"subject":       payload.Subject,
			"message":       payload.Message,
			"submitted_at":  payload.SubmittedAt,
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch contact submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) BookingSubmitted(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("webhook.inbound.mq").Start(ctx, "BookingSubmitted")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: booking submitted webhook fan-out", "msg_body", string(body))

	var payload event.BookingSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of booking submitted", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Dispatch(ctx, usecase.DispatchInput{
		Event: event.BookingSubmittedDestination,
		Payload: valueobject.JSONMap{
			"booking_id":   payload.BookingID,
			"name":         payload.Name,
			"email":        payload.Email,
			"phone":        payload.Phone,
			"service":      payload.Service,
			"preferred_at": payload.PreferredAt,
			"notes":        payload.Notes,
			"submitted_at": payload.SubmittedAt,
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch booking submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) NewsletterSubscribed(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("webhook.inbound.mq").Start(ctx, "NewsletterSubscribed")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: newsletter subscribed webhook fan-out", "msg_body", string(body))

	var payload event.NewsletterSubscribedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of newsletter subscribed", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Dispatch(ctx, usecase.DispatchInput{
		Event: event.NewsletterSubscribedDestination,
		Payload: valueobject.JSONMap{
			"subscriber_id": payload.SubscriberID,
			"email":         payload.Email,
			"submitted_at":  payload.SubmittedAt,
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch newsletter subscribed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
