package db

import (
	"context"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/jackc/pgx/v5"
)

const adminColumns = `id, email, full_name, password, totp_secret, totp_enabled, created_at, updated_at`

func (s *DB) GetAdminByEmail(ctx context.Context, email string) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)

	admin, err := scanAdmin(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return admin, nil
}

func (s *DB) GetAdminByID(ctx context.Context, id int64) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)

	admin, err := scanAdmin(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return admin, nil
}

func (s *DB) UpdateAdminTOTP(ctx context.Context, adminID int64, secret []byte, enabled bool) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAdminTOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE admins
		SET totp_secret = $2, totp_enabled = $3, updated_at = now()
		WHERE id = $1`,
		adminID, secret, enabled,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	var a entity.Admin
	err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.Password, &a.TOTPSecret, &a.TOTPEnabled, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
