package event

const BookingSubmittedDestination string = "booking_submitted"
const BookingSubmittedConsumerWebhook string = "booking_submitted_webhook"

type BookingSubmittedMessage struct {
	BookingID   int64  `json:"booking_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Service     string `json:"service"`
	PreferredAt string `json:"preferred_at"`
	Notes       string `json:"notes"`
	SubmittedAt int64  `json:"submitted_at"`
}
