package mq

import (
	"context"
	"encoding/json"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/messaging"
	"github.com/danargo/sitegate/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, span trace.Span, destination string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishContactSubmitted(ctx context.Context, sub entity.ContactSubmission) error {
	ctx, span := m.ins.Tracer("intake.outbound.mq").Start(ctx, "PublishContactSubmitted")
	defer span.End()

	return m.publish(ctx, span, event.ContactSubmittedDestination, event.ContactSubmittedMessage{
		SubmissionID: sub.ID,
		Name:         sub.Name,
		Email:        sub.Email,
		Subject:      sub.Subject,
		Message:      sub.Message,
		SubmittedAt:  sub.CreatedAt.Unix(),
	})
}

func (m *Messaging) PublishBookingSubmitted(ctx context.Context, booking entity.Booking) error {
	ctx, span := m.ins.Tracer("intake.outbound.mq").Start(ctx, "PublishBookingSubmitted")
	defer span.End()

	return m.publish(ctx, span, event.BookingSubmittedDestination, event.BookingSubmittedMessage{
		BookingID:   booking.ID,
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		Service:     booking.Service,
		PreferredAt: booking.PreferredAt,
		Notes:       booking.Notes,
		SubmittedAt: booking.CreatedAt.Unix(),
	})
}

func (m *Messaging) PublishNewsletterSubscribed(ctx context.Context, sub entity.Subscriber) error {
	ctx, span := m.ins.Tracer("intake.outbound.mq").Start(ctx, "PublishNewsletterSubscribed")
	defer span.End()

	return m.publish(ctx, span, event.NewsletterSubscribedDestination, event.NewsletterSubscribedMessage{
		SubscriberID: sub.ID,
		Email:        sub.Email,
		SubmittedAt:  sub.CreatedAt.Unix(),
	})
}
