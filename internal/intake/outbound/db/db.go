package db

import (
	"context"
	"errors"

	"github.com/danargo/sitegate/internal/intake/entity"
	"github.com/danargo/sitegate/internal/pkg/goerror"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		ins:  ins,
	}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("intake.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) CreateContactSubmission(ctx context.Context, sub entity.ContactSubmission) (err error) {
	ctx, span := s.startSpan(ctx, "CreateContactSubmission")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sub.ID, sub.Name, sub.Email, sub.Subject, sub.Message, sub.CreatedAt,
	)
	return s.mapError(err)
}

func (s *DB) CreateBooking(ctx context.Context, booking entity.Booking) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBooking")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO bookings (id, name, email, phone, service, preferred_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID, booking.Name, booking.Email, booking.Phone, booking.Service,
		booking.PreferredAt, booking.Notes, booking.CreatedAt,
	)
	return s.mapError(err)
}

func (s *DB) CreateSubscriber(ctx context.Context, sub entity.Subscriber) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSubscriber")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO newsletter_subscribers (id, email, created_at)
		VALUES ($1, $2, $3)`,
		sub.ID, sub.Email, sub.CreatedAt,
	)
	return s.mapError(err)
}
