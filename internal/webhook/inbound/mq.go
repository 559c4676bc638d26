package inbound

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/goroutine"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/messaging"
	"github.com/danargo/sitegate/internal/pkg/uid"
	"github.com/danargo/sitegate/internal/shared/event"
	"github.com/sethvargo/go-retry"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.webhook.consumer_names")

	var consumers = []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.ContactSubmittedConsumerWebhook,
			topic:   event.ContactSubmittedDestination,
			handler: mqHandler.ContactSubmitted,
		},
		{
			name:    event.BookingSubmittedConsumerWebhook,
			topic:   event.BookingSubmittedDestination,
			handler: mqHandler.BookingSubmitted,
		},
		{
			name:    event.NewsletterSubscribedConsumerWebhook,
			topic:   event.NewsletterSubscribedDestination,
			handler: mqHandler.NewsletterSubscribed,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)

				b := retry.WithCappedDuration(30*time.Second, retry.NewFibonacci(time.Second))
				return retry.Do(pCtx, b, func(rCtx context.Context) error {
					err := messenger.Consume(rCtx,
						consumer.topic,
						consumer.handler,
						messaging.WithChannel(consumer.name),
						messaging.WithQueueGroup(consumer.name),
						messaging.WithGroup(consumer.name),
						messaging.WithAutoAck(true),
						messaging.WithConcurrency(10),
						messaging.WithMaxInFlight(10),
					)
					if err != nil && rCtx.Err() == nil {
						slog.ErrorContext(rCtx, "consumer stopped, reconnecting", "consumer", consumer.name, "error", err)
						return retry.RetryableError(err)
					}
					return err
				})
			})
		}
	}
}
