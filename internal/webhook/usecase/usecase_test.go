package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/goroutine"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/danargo/sitegate/internal/pkg/valueobject"
	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	mu         sync.Mutex
	webhooks   map[int64]entity.Webhook
	deliveries map[string]entity.Delivery

	createWebhookErr error
	listByEventErr   error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		webhooks:   map[int64]entity.Webhook{},
		deliveries: map[string]entity.Delivery{},
	}
}

func (f *fakeDB) CreateWebhook(_ context.Context, hook entity.Webhook) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createWebhookErr != nil {
		return f.createWebhookErr
	}
	f.webhooks[hook.ID] = hook
	return nil
}

func (f *fakeDB) GetWebhookByID(_ context.Context, id int64) (*entity.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hook, ok := f.webhooks[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &hook, nil
}

func (f *fakeDB) ListWebhooks(_ context.Context) ([]entity.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.Webhook, 0, len(f.webhooks))
	for _, hook := range f.webhooks {
		out = append(out, hook)
	}
	return out, nil
}

func (f *fakeDB) ListActiveWebhooksByEvent(_ context.Context, event string) ([]entity.Webhook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listByEventErr != nil {
		return nil, f.listByEventErr
	}

	var out []entity.Webhook
	for _, hook := range f.webhooks {
		if hook.Active && hook.Subscribed(event) {
			out = append(out, hook)
		}
	}
	return out, nil
}

func (f *fakeDB) UpdateWebhook(_ context.Context, hook entity.Webhook) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.webhooks[hook.ID]; !ok {
		return goerror.ErrNotFound
	}
	f.webhooks[hook.ID] = hook
	return nil
}

func (f *fakeDB) DeleteWebhook(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.webhooks[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.webhooks, id)
	return nil
}

func (f *fakeDB) CreateDelivery(_ context.Context, d entity.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deliveries[d.ID] = d
	return nil
}

func (f *fakeDB) GetDeliveryByID(_ context.Context, id string) (*entity.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.deliveries[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDB) ListDeliveriesByWebhook(_ context.Context, webhookID int64, limit int32) ([]entity.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Delivery
	for _, d := range f.deliveries {
		if d.WebhookID == webhookID {
			out = append(out, d)
		}
		if int32(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDB) UpdateDeliveryAttempt(_ context.Context, d entity.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.deliveries[d.ID]; !ok {
		return goerror.ErrNotFound
	}
	f.deliveries[d.ID] = d
	return nil
}

type fakeSender struct {
	mu      sync.Mutex
	results []entity.AttemptResult
	calls   int
}

func (f *fakeSender) Send(context.Context, entity.Webhook, entity.Delivery) entity.AttemptResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if len(f.results) == 0 {
		return entity.AttemptResult{Success: true, Response: entity.Response{Status: 200, StatusText: "200 OK"}}
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

type seqStringID struct {
	mu sync.Mutex
	n  int
}

func (s *seqStringID) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++
	return "dlv-" + string(rune('0'+s.n))
}

type seqNumberID struct{ n int64 }

func (s *seqNumberID) Generate() int64 {
	s.n++
	return s.n
}

func newTestUsecase(t *testing.T, db *fakeDB, sender *fakeSender) (*Usecase, *goroutine.Manager) {
	t.Helper()

	v, err := validator.NewV10()
	require.NoError(t, err)

	gm := goroutine.NewManager(8)
	uc := New(Dependency{
		RepoDB:     db,
		Sender:     sender,
		Validator:  v,
		UID:        &seqNumberID{},
		DID:        &seqStringID{},
		Clock:      clock.Static{At: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
		Goroutine:  gm,
	})
	return uc, gm
}

func TestRegister(t *testing.T) {
	db := newFakeDB()
	uc, _ := newTestUsecase(t, db, &fakeSender{})

	out, err := uc.Register(context.Background(), RegisterInput{
		URL:    "https://crm.example.com/hooks",
		Events: []string{" Contact_Submitted ", "contact_submitted", "booking_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, []string{"contact_submitted", "booking_submitted"}, out.Events)
	assert.NotZero(t, out.ID)

	stored, err := db.GetWebhookByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com/hooks", stored.URL)
	assert.True(t, stored.Active)
}

func TestRegister_InvalidInput(t *testing.T) {
	uc, _ := newTestUsecase(t, newFakeDB(), &fakeSender{})

	tests := map[string]RegisterInput{
		"missing url":   {Events: []string{"contact_submitted"}, Secret: "super-secret-signing-key"},
		"bad url":       {URL: "not-a-url", Events: []string{"contact_submitted"}, Secret: "super-secret-signing-key"},
		"no events":     {URL: "https://example.com/h", Secret: "super-secret-signing-key"},
		"short secret":  {URL: "https://example.com/h", Events: []string{"contact_submitted"}, Secret: "short"},
		"blank events": {URL: "https://example.com/h", Events: []string{"   "}, Secret: "super-secret-signing-key"},
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), in)
			assert.Error(t, err)
		})
	}
}

func TestUpdate(t *testing.T) {
	db := newFakeDB()
	uc, _ := newTestUsecase(t, db, &fakeSender{})

	hook, err := uc.Register(context.Background(), RegisterInput{
		URL:    "https://crm.example.com/hooks",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	inactive := false
	err = uc.Update(context.Background(), UpdateInput{
		ID:     hook.ID,
		URL:    "https://crm.example.com/hooks/v2",
		Events: []string{"booking_submitted"},
		Active: &inactive,
	})
	require.NoError(t, err)

	stored, err := db.GetWebhookByID(context.Background(), hook.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com/hooks/v2", stored.URL)
	assert.Equal(t, []string{"booking_submitted"}, stored.Events)
	assert.False(t, stored.Active)
}

func TestUpdate_NotFound(t *testing.T) {
	uc, _ := newTestUsecase(t, newFakeDB(), &fakeSender{})

	err := uc.Update(context.Background(), UpdateInput{ID: 999, URL: "https://example.com/h"})
	require.Error(t, err)

	var gErr *goerror.Error
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, goerror.CodeNotFound, gErr.Code())
}

func TestDelete(t *testing.T) {
	db := newFakeDB()
	uc, _ := newTestUsecase(t, db, &fakeSender{})

	hook, err := uc.Register(context.Background(), RegisterInput{
		URL:    "https://crm.example.com/hooks",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), DeleteInput{ID: hook.ID}))

	_, err = uc.Get(context.Background(), hook.ID)
	assert.Error(t, err)
}

func TestDispatch_FansOutToSubscribers(t *testing.T) {
	db := newFakeDB()
	sender := &fakeSender{}
	uc, gm := newTestUsecase(t, db, sender)

	ctx := context.Background()

	match, err := uc.Register(ctx, RegisterInput{
		URL:    "https://a.example.com/h",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, RegisterInput{
		URL:    "https://b.example.com/h",
		Events: []string{"booking_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	err = uc.Dispatch(ctx, DispatchInput{
		Event:   "contact_submitted",
		Payload: valueobject.JSONMap{"name": "Ada"},
	})
	require.NoError(t, err)
	require.NoError(t, gm.Wait())

	assert.Equal(t, 1, sender.calls)

	deliveries, err := db.ListDeliveriesByWebhook(ctx, match.ID, 10)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)

	d := deliveries[0]
	assert.Equal(t, entity.DeliveryStatusSuccess, d.Status)
	assert.Equal(t, int32(1), d.Attempts)
	assert.NotNil(t, d.LastAttempt)
	assert.Equal(t, 200, d.Response.Status)
}

func TestDispatch_SkipsInactive(t *testing.T) {
	db := newFakeDB()
	sender := &fakeSender{}
	uc, gm := newTestUsecase(t, db, sender)

	ctx := context.Background()
	hook, err := uc.Register(ctx, RegisterInput{
		URL:    "https://a.example.com/h",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	off := false
	require.NoError(t, uc.Update(ctx, UpdateInput{ID: hook.ID, Active: &off}))

	err = uc.Dispatch(ctx, DispatchInput{
		Event:   "contact_submitted",
		Payload: valueobject.JSONMap{"name": "Ada"},
	})
	require.NoError(t, err)
	require.NoError(t, gm.Wait())

	assert.Zero(t, sender.calls)
}

func TestDispatch_FailedAttemptRecorded(t *testing.T) {
	db := newFakeDB()
	sender := &fakeSender{results: []entity.AttemptResult{{
		Success:  false,
		Response: entity.Response{Status: 500, StatusText: "500 Internal Server Error"},
	}}}
	uc, gm := newTestUsecase(t, db, sender)

	ctx := context.Background()
	hook, err := uc.Register(ctx, RegisterInput{
		URL:    "https://a.example.com/h",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	err = uc.Dispatch(ctx, DispatchInput{Event: "contact_submitted", Payload: valueobject.JSONMap{"k": "v"}})
	require.NoError(t, err)
	require.NoError(t, gm.Wait())

	deliveries, err := db.ListDeliveriesByWebhook(ctx, hook.ID, 10)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, entity.DeliveryStatusFailed, deliveries[0].Status)
	assert.Equal(t, int32(1), deliveries[0].Attempts)
}

func TestRetry_SucceedsAfterFailure(t *testing.T) {
	db := newFakeDB()
	sender := &fakeSender{results: []entity.AttemptResult{
		{Success: false, Response: entity.Response{Error: "connection refused"}},
		{Success: true, Response: entity.Response{Status: 200, StatusText: "200 OK"}},
	}}
	uc, gm := newTestUsecase(t, db, sender)

	ctx := context.Background()
	_, err := uc.Register(ctx, RegisterInput{
		URL:    "https://a.example.com/h",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Dispatch(ctx, DispatchInput{Event: "contact_submitted", Payload: valueobject.JSONMap{"k": "v"}}))
	require.NoError(t, gm.Wait())

	var deliveryID string
	for id := range db.deliveries {
		deliveryID = id
	}
	require.NotEmpty(t, deliveryID)
	require.Equal(t, entity.DeliveryStatusFailed, db.deliveries[deliveryID].Status)

	updated, err := uc.Retry(ctx, RetryInput{DeliveryID: deliveryID})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusSuccess, updated.Status)
	assert.Equal(t, int32(2), updated.Attempts)
}

func TestRetry_RejectsAtAttemptCeiling(t *testing.T) {
	db := newFakeDB()
	sender := &fakeSender{results: []entity.AttemptResult{{
		Success:  false,
		Response: entity.Response{Status: 503, StatusText: "503 Service Unavailable"},
	}}}
	uc, gm := newTestUsecase(t, db, sender)

	ctx := context.Background()
	_, err := uc.Register(ctx, RegisterInput{
		URL:    "https://a.example.com/h",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Dispatch(ctx, DispatchInput{Event: "contact_submitted", Payload: valueobject.JSONMap{"k": "v"}}))
	require.NoError(t, gm.Wait())

	var deliveryID string
	for id := range db.deliveries {
		deliveryID = id
	}
	require.NotEmpty(t, deliveryID)

	for i := 0; i < entity.MaxDeliveryAttempts-1; i++ {
		_, err = uc.Retry(ctx, RetryInput{DeliveryID: deliveryID})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(entity.MaxDeliveryAttempts), db.deliveries[deliveryID].Attempts)

	_, err = uc.Retry(ctx, RetryInput{DeliveryID: deliveryID})
	require.Error(t, err)

	var gErr *goerror.Error
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, goerror.CodeExhausted, gErr.Code())
	assert.Equal(t, int32(entity.MaxDeliveryAttempts), db.deliveries[deliveryID].Attempts)
}

func TestRetry_NotFound(t *testing.T) {
	uc, _ := newTestUsecase(t, newFakeDB(), &fakeSender{})

	_, err := uc.Retry(context.Background(), RetryInput{DeliveryID: "missing"})
	require.Error(t, err)

	var gErr *goerror.Error
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, goerror.CodeNotFound, gErr.Code())
}

func TestListDeliveries(t *testing.T) {
	db := newFakeDB()
	uc, gm := newTestUsecase(t, db, &fakeSender{})

	ctx := context.Background()
	hook, err := uc.Register(ctx, RegisterInput{
		URL:    "https://a.example.com/h",
		Events: []string{"contact_submitted"},
		Secret: "super-secret-signing-key",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Dispatch(ctx, DispatchInput{Event: "contact_submitted", Payload: valueobject.JSONMap{"k": "v"}}))
	require.NoError(t, gm.Wait())

	out, err := uc.ListDeliveries(ctx, ListDeliveriesInput{WebhookID: hook.ID})
	require.NoError(t, err)
	assert.Len(t, out.Deliveries, 1)
}

func TestDispatch_ListError(t *testing.T) {
	db := newFakeDB()
	db.listByEventErr = errors.New("db down")
	uc, _ := newTestUsecase(t, db, &fakeSender{})

	err := uc.Dispatch(context.Background(), DispatchInput{
		Event:   "contact_submitted",
		Payload: valueobject.JSONMap{"k": "v"},
	})
	assert.Error(t, err)
}
