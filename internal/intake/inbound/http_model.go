package inbound

import "net/http"

type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SubmitContactResponse struct {
	ID int64 `json:"id"`
}

func (SubmitContactResponse) StatusCode() int {
	return http.StatusCreated
}

func (SubmitContactResponse) Message() string {
	return "Thanks for reaching out, we will get back to you soon"
}

type SubmitBookingRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Service        string `json:"service"`
	PreferredAt    string `json:"preferred_at"`
	Notes          string `json:"notes"`
}

type SubmitBookingResponse struct {
	ID int64 `json:"id"`
}

func (SubmitBookingResponse) StatusCode() int {
	return http.StatusCreated
}

func (SubmitBookingResponse) Message() string {
	return "Booking request received"
}

type SubscribeNewsletterRequest struct {
	Email string `json:"email"`
}

type SubscribeNewsletterResponse struct {
	ID int64 `json:"id"`
}

func (SubscribeNewsletterResponse) StatusCode() int {
	return http.StatusCreated
}

func (SubscribeNewsletterResponse) Message() string {
	return "You are subscribed"
}
