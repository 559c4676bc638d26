// Package entity holds the intake domain model: visitor submissions coming
// in from the public marketing site.
package entity

import "time"

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// Booking is an appointment request for one of the advertised services.
type Booking struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Service     string
	PreferredAt string
	Notes       string
	CreatedAt   time.Time
}

// Subscriber is a newsletter signup. Email is unique.
type Subscriber struct {
	ID        int64
	Email     string
	CreatedAt time.Time
}
