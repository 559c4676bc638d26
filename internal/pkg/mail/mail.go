// Package mail abstracts outbound email behind a small interface with an
// SMTP implementation.
package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To lists the recipients.
	To []string
	// Subject is the subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body; when both bodies are set the
	// message is sent as multipart/alternative.
	HTMLBody string
}

// Mail sends email.
type Mail interface {
	io.Closer

	// Send dispatches msg through the underlying provider.
	Send(ctx context.Context, msg Message) error
}
