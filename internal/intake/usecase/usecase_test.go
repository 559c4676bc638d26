package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/clock"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/idempotency"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/danargo/sitegate/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	contacts    []entity.ContactSubmission
	bookings    []entity.Booking
	subscribers []entity.Subscriber

	createErr error
}

func (f *fakeRepo) CreateContactSubmission(_ context.Context, sub entity.ContactSubmission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.contacts = append(f.contacts, sub)
	return nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, booking entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeRepo) CreateSubscriber(_ context.Context, sub entity.Subscriber) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.subscribers {
		if existing.Email == sub.Email {
			return goerror.ErrConflict
		}
	}
	f.subscribers = append(f.subscribers, sub)
	return nil
}

type fakeMQ struct {
	published  []string
	publishErr error
}

func (f *fakeMQ) PublishContactSubmitted(_ context.Context, sub entity.ContactSubmission) error {
	f.published = append(f.published, "contact_submitted")
	return f.publishErr
}

func (f *fakeMQ) PublishBookingSubmitted(_ context.Context, booking entity.Booking) error {
	f.published = append(f.published, "booking_submitted")
	return f.publishErr
}

func (f *fakeMQ) PublishNewsletterSubscribed(_ context.Context, sub entity.Subscriber) error {
	f.published = append(f.published, "newsletter_subscribed")
	return f.publishErr
}

type fakeIdempotency struct {
	states map[string]error
	ran    []string
}

func (f *fakeIdempotency) Claim(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Run(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if err, ok := f.states[key]; ok {
		return err
	}
	f.ran = append(f.ran, key)
	if f.states == nil {
		f.states = map[string]error{}
	}
	if err := fn(ctx); err != nil {
		f.states[key] = idempotency.ErrFailed
		return err
	}
	f.states[key] = idempotency.ErrCompleted
	return nil
}

type seqNumberID struct{ n int64 }

func (s *seqNumberID) Generate() int64 {
	s.n++
	return s.n
}

func newTestUsecase(t *testing.T, repo *fakeRepo, mq *fakeMQ, idem idempotency.Idempotency) *Usecase {
	t.Helper()

	v, err := validator.NewV10()
	require.NoError(t, err)

	return New(Dependency{
		RepoDB:      repo,
		RepoMQ:      mq,
		Validator:   v,
		UID:         &seqNumberID{},
		Clock:       clock.Static{At: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)},
		Instrument:  instrument.NewNoop(),
		Idempotency: idem,
	})
}

func TestSubmitContact(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMQ{}
	uc := newTestUsecase(t, repo, mq, &fakeIdempotency{})

	out, err := uc.SubmitContact(context.Background(), SubmitContactInput{
		Name:    "  Ada Lovelace ",
		Email:   "Ada@Example.COM",
		Subject: "Hello",
		Message: "I have a question about pricing.",
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)

	require.Len(t, repo.contacts, 1)
	assert.Equal(t, "Ada Lovelace", repo.contacts[0].Name)
	assert.Equal(t, "ada@example.com", repo.contacts[0].Email)
	assert.Equal(t, []string{"contact_submitted"}, mq.published)
}

func TestSubmitContact_InvalidEmail(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMQ{}, &fakeIdempotency{})

	_, err := uc.SubmitContact(context.Background(), SubmitContactInput{
		Name:    "Ada",
		Email:   "not-an-email",
		Subject: "Hello",
		Message: "Hi",
	})
	assert.Error(t, err)
}

func TestSubmitContact_PublishFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMQ{publishErr: errors.New("broker down")}
	uc := newTestUsecase(t, repo, mq, &fakeIdempotency{})

	out, err := uc.SubmitContact(context.Background(), SubmitContactInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Hi",
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Len(t, repo.contacts, 1)
}

func TestSubmitBooking_WithoutIdempotencyKey(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMQ{}
	idem := &fakeIdempotency{}
	uc := newTestUsecase(t, repo, mq, idem)

	out, err := uc.SubmitBooking(context.Background(), SubmitBookingInput{
		Name:        "Ada",
		Email:       "ada@example.com",
		Service:     "consultation",
		PreferredAt: "2025-04-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Len(t, repo.bookings, 1)
	assert.Empty(t, idem.ran)
}

func TestSubmitBooking_DuplicateKeyRejected(t *testing.T) {
	repo := &fakeRepo{}
	idem := &fakeIdempotency{}
	uc := newTestUsecase(t, repo, &fakeMQ{}, idem)

	in := SubmitBookingInput{
		IdempotencyKey: "key-1",
		Name:           "Ada",
		Email:          "ada@example.com",
		Service:        "consultation",
		PreferredAt:    "2025-04-01T10:00:00Z",
	}

	_, err := uc.SubmitBooking(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, repo.bookings, 1)

	_, err = uc.SubmitBooking(context.Background(), in)
	require.Error(t, err)

	var gErr *goerror.Error
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, goerror.CodeConflict, gErr.Code())
	assert.Len(t, repo.bookings, 1)
}

func TestSubmitBooking_InProgressRejected(t *testing.T) {
	idem := &fakeIdempotency{states: map[string]error{
		"intake:booking:key-2": idempotency.ErrInProgress,
	}}
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMQ{}, idem)

	_, err := uc.SubmitBooking(context.Background(), SubmitBookingInput{
		IdempotencyKey: "key-2",
		Name:           "Ada",
		Email:          "ada@example.com",
		Service:        "consultation",
		PreferredAt:    "2025-04-01T10:00:00Z",
	})
	require.Error(t, err)

	var gErr *goerror.Error
	require.ErrorAs(t, err, &gErr)
	assert.Equal(t, goerror.CodeConflict, gErr.Code())
}

func TestSubscribeNewsletter(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMQ{}
	uc := newTestUsecase(t, repo, mq, &fakeIdempotency{})

	out, err := uc.SubscribeNewsletter(context.Background(), SubscribeNewsletterInput{Email: "Ada@Example.com"})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)

	require.Len(t, repo.subscribers, 1)
	assert.Equal(t, "ada@example.com", repo.subscribers[0].Email)
}

func TestSubscribeNewsletter_DuplicateIsSilentSuccess(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMQ{}
	uc := newTestUsecase(t, repo, mq, &fakeIdempotency{})

	_, err := uc.SubscribeNewsletter(context.Background(), SubscribeNewsletterInput{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = uc.SubscribeNewsletter(context.Background(), SubscribeNewsletterInput{Email: "ada@example.com"})
	require.NoError(t, err)

	assert.Len(t, repo.subscribers, 1)
	assert.Equal(t, []string{"newsletter_subscribed"}, mq.published)
}

func TestSubmitBooking_RepoError(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("db down")}
	uc := newTestUsecase(t, repo, &fakeMQ{}, &fakeIdempotency{})

	_, err := uc.SubmitBooking(context.Background(), SubmitBookingInput{
		Name:        "Ada",
		Email:       "ada@example.com",
		Service:     "consultation",
		PreferredAt: "2025-04-01T10:00:00Z",
	})
	assert.Error(t, err)
}
