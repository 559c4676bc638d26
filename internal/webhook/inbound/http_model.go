package inbound

import (
	"net/http"
	"time"

	"github.com/danargo/sitegate/internal/pkg/valueobject"
)

type RegisterWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
	Secret string   `json:"secret"`
}

type RegisterWebhookResponse struct {
	ID     int64    `json:"id"`
	Events []string `json:"events"`
}

func (RegisterWebhookResponse) StatusCode() int {
	return http.StatusCreated
}

type UpdateWebhookRequest struct {
	URL    string   `json:"url,omitempty"`
	Events []string `json:"events,omitempty"`
	Active *bool    `json:"is_active,omitempty"`
}

type WebhookResponse struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WebhooksResponse struct {
	Webhooks []WebhookResponse `json:"webhooks"`
}

type DeliveryResponseDetail struct {
	Status     int    `json:"status"`
	StatusText string `json:"status_text,omitempty"`
	Error      string `json:"error,omitempty"`
}

type DeliveryResponse struct {
	ID          string                 `json:"id"`
	WebhookID   int64                  `json:"webhook_id"`
	Event       string                 `json:"event"`
	Payload     valueobject.JSONMap    `json:"payload"`
	Status      string                 `json:"status"`
	Attempts    int32                  `json:"attempts"`
	LastAttempt *time.Time             `json:"last_attempt_at,omitempty"`
	Response    DeliveryResponseDetail `json:"response"`
	CreatedAt   time.Time              `json:"created_at"`
}

type DeliveriesResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
}
