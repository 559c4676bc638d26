package sender

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/signing"
	"github.com/danargo/sitegate/internal/pkg/valueobject"
	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDelivery() entity.Delivery {
	return entity.Delivery{
		ID:        "dlv-1",
		WebhookID: 7,
		Event:     "contact_submitted",
		Payload:   valueobject.JSONMap{"name": "Ada", "email": "ada@example.com"},
	}
}

func TestSend_SignsAndDelivers(t *testing.T) {
	var (
		gotBody    []byte
		gotHeaders http.Header
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := entity.Webhook{ID: 7, URL: srv.URL, Secret: "super-secret-signing-key", Active: true}
	s := New(5*time.Second, instrument.NewNoop())

	res := s.Send(context.Background(), hook, testDelivery())

	require.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Response.Status)
	assert.Empty(t, res.Response.Error)

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "contact_submitted", gotHeaders.Get("X-Webhook-Event"))
	assert.Equal(t, "dlv-1", gotHeaders.Get("X-Webhook-ID"))
	assert.Equal(t, signing.SignBytes(gotBody, hook.Secret), gotHeaders.Get("X-Webhook-Signature"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "Ada", payload["name"])
}

func TestSend_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	hook := entity.Webhook{ID: 7, URL: srv.URL, Secret: "super-secret-signing-key"}
	s := New(5*time.Second, instrument.NewNoop())

	res := s.Send(context.Background(), hook, testDelivery())

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusServiceUnavailable, res.Response.Status)
	assert.Empty(t, res.Response.Error)
}

func TestSend_TransportErrorCaptured(t *testing.T) {
	// Reserved TEST-NET-1 address, nothing listens there.
	hook := entity.Webhook{ID: 7, URL: "http://192.0.2.1:9/hook", Secret: "super-secret-signing-key"}
	s := New(200*time.Millisecond, instrument.NewNoop())

	res := s.Send(context.Background(), hook, testDelivery())

	assert.False(t, res.Success)
	assert.Zero(t, res.Response.Status)
	assert.NotEmpty(t, res.Response.Error)
}

func TestSend_Redirect3xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	hook := entity.Webhook{ID: 7, URL: srv.URL, Secret: "super-secret-signing-key"}
	s := New(5*time.Second, instrument.NewNoop())

	res := s.Send(context.Background(), hook, testDelivery())

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusNotModified, res.Response.Status)
}
