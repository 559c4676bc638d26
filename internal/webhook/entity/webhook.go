package entity

import (
	"errors"
	"time"

	"github.com/danargo/sitegate/internal/pkg/valueobject"
)

// MaxDeliveryAttempts is the hard ceiling for delivery attempts per delivery.
const MaxDeliveryAttempts = 5

// ErrMaxAttempts is returned when a delivery has exhausted its attempts.
var ErrMaxAttempts = errors.New("webhook: delivery attempts exhausted")

// Webhook is a registered subscriber endpoint.
type Webhook struct {
	ID        int64
	URL       string
	Events    []string
	Secret    string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subscribed reports whether the webhook listens for the given event name.
func (w Webhook) Subscribed(event string) bool {
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}

// Response captures the outcome of a single delivery attempt. Transport
// failures land in Error with a zero Status.
type Response struct {
	Status     int
	StatusText string
	Error      string
}

// AttemptResult is the outcome of one HTTP delivery attempt. Transport errors
// are carried in Response.Error; the sender never fails the attempt itself.
type AttemptResult struct {
	Success  bool
	Response Response
}

// Delivery is one event payload addressed to one webhook.
type Delivery struct {
	ID          string
	WebhookID   int64
	Event       string
	Payload     valueobject.JSONMap
	Status      DeliveryStatus
	Attempts    int32
	LastAttempt *time.Time
	Response    Response
	CreatedAt   time.Time
}

// Exhausted reports whether the delivery has no attempts left.
func (d Delivery) Exhausted() bool {
	return d.Attempts >= MaxDeliveryAttempts
}
