package event

const NewsletterSubscribedDestination string = "newsletter_subscribed"
const NewsletterSubscribedConsumerWebhook string = "newsletter_subscribed_webhook"

type NewsletterSubscribedMessage struct {
	SubscriberID int64  `json:"subscriber_id"`
	Email        string `json:"email"`
	SubmittedAt  int64  `json:"submitted_at"`
}
