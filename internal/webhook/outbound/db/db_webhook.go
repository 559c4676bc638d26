package db

import (
	"context"

	"github.com/danargo/sitegate/internal/webhook/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) CreateWebhook(ctx context.Context, hook entity.Webhook) (err error) {
	ctx, span := s.startSpan(ctx, "CreateWebhook")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO webhooks (id, url, events, secret, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		hook.ID, hook.URL, hook.Events, hook.Secret, hook.Active, hook.CreatedAt, hook.UpdatedAt,
	)
	return s.mapError(err)
}

func (s *DB) GetWebhookByID(ctx context.Context, id int64) (_ *entity.Webhook, err error) {
	ctx, span := s.startSpan(ctx, "GetWebhookByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, url, events, secret, is_active, created_at, updated_at
		FROM webhooks
		WHERE id = $1`, id,
	)

	var hook entity.Webhook
	err = row.Scan(&hook.ID, &hook.URL, &hook.Events, &hook.Secret, &hook.Active, &hook.CreatedAt, &hook.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &hook, nil
}

func (s *DB) ListWebhooks(ctx context.Context) (_ []entity.Webhook, err error) {
	ctx, span := s.startSpan(ctx, "ListWebhooks")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, url, events, secret, is_active, created_at, updated_at
		FROM webhooks
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, scanWebhook)
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) ListActiveWebhooksByEvent(ctx context.Context, event string) (_ []entity.Webhook, err error) {
	ctx, span := s.startSpan(ctx, "ListActiveWebhooksByEvent")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, url, events, secret, is_active, created_at, updated_at
		FROM webhooks
		WHERE is_active AND $1 = ANY(events)
		ORDER BY created_at`, event,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, scanWebhook)
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) UpdateWebhook(ctx context.Context, hook entity.Webhook) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateWebhook")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE webhooks
		SET url = $2, events = $3, is_active = $4, updated_at = $5
		WHERE id = $1`,
		hook.ID, hook.URL, hook.Events, hook.Active, hook.UpdatedAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func (s *DB) DeleteWebhook(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteWebhook")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func scanWebhook(row pgx.CollectableRow) (entity.Webhook, error) {
	var hook entity.Webhook
	err := row.Scan(&hook.ID, &hook.URL, &hook.Events, &hook.Secret, &hook.Active, &hook.CreatedAt, &hook.UpdatedAt)
	return hook, err
}
