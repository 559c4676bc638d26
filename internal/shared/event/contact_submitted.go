package event

const ContactSubmittedDestination string = "contact_submitted"
const ContactSubmittedConsumerWebhook string = "contact_submitted_webhook"

type ContactSubmittedMessage struct {
	SubmissionID int64  `json:"submission_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	SubmittedAt  int64  `json:"submitted_at"`
}
