package db

import (
	"context"

	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) CreateDelivery(ctx context.Context, d entity.Delivery) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDelivery")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO webhook_deliveries
			(id, webhook_id, event, payload, status, attempts, last_attempt_at,
			 response_status, response_status_text, response_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.WebhookID, d.Event, d.Payload, int16(d.Status), d.Attempts, d.LastAttempt,
		d.Response.Status, d.Response.StatusText, d.Response.Error, d.CreatedAt,
	)
	return s.mapError(err)
}

func (s *DB) GetDeliveryByID(ctx context.Context, id string) (_ *entity.Delivery, err error) {
	ctx, span := s.startSpan(ctx, "GetDeliveryByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, webhook_id, event, payload, status, attempts, last_attempt_at,
			response_status, response_status_text, response_error, created_at
		FROM webhook_deliveries
		WHERE id = $1`, id,
	)

	var d entity.Delivery
	err = row.Scan(&d.ID, &d.WebhookID, &d.Event, &d.Payload, &d.Status, &d.Attempts, &d.LastAttempt,
		&d.Response.Status, &d.Response.StatusText, &d.Response.Error, &d.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &d, nil
}

func (s *DB) ListDeliveriesByWebhook(ctx context.Context, webhookID int64, limit int32) (_ []entity.Delivery, err error) {
	ctx, span := s.startSpan(ctx, "ListDeliveriesByWebhook")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, webhook_id, event, payload, status, attempts, last_attempt_at,
			response_status, response_status_text, response_error, created_at
		FROM webhook_deliveries
		WHERE webhook_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, webhookID, limit,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Delivery, error) {
		var d entity.Delivery
		sErr := row.Scan(&d.ID, &d.WebhookID, &d.Event, &d.Payload, &d.Status, &d.Attempts, &d.LastAttempt,
			&d.Response.Status, &d.Response.StatusText, &d.Response.Error, &d.CreatedAt)
		return d, sErr
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) UpdateDeliveryAttempt(ctx context.Context, d entity.Delivery) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateDeliveryAttempt")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE webhook_deliveries
		SET status = $2, attempts = $3, last_attempt_at = $4,
			response_status = $5, response_status_text = $6, response_error = $7
		WHERE id = $1`,
		d.ID, int16(d.Status), d.Attempts, d.LastAttempt,
		d.Response.Status, d.Response.StatusText, d.Response.Error,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}
