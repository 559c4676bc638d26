package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danargo/sitegate/internal/admin/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) CreateChallenge(ctx context.Context, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO admin_challenges (id, admin_id, token, purpose, metadata, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ch.ID, ch.AdminID, ch.Token, int16(ch.Purpose), ch.Metadata, ch.ExpiresAt, ch.CreatedAt,
	)
	return s.mapError(err)
}

func (s *DB) GetChallengeAdminByTokenPurpose(
	ctx context.Context,
	tokenHash string,
	purpose entity.ChallengePurpose,
) (_ *entity.ChallengeAdmin, err error) {
	ctx, span := s.startSpan(ctx, "GetChallengeAdminByTokenPurpose")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT c.id, c.metadata, c.expires_at, a.id, a.email, a.totp_secret, a.totp_enabled
		FROM admin_challenges c
		JOIN admins a ON a.id = c.admin_id
		WHERE c.token = $1 AND c.purpose = $2`,
		tokenHash, int16(purpose),
	)

	var cu entity.ChallengeAdmin
	err = row.Scan(&cu.ChallengeID, &cu.ChallengeMetadata, &cu.ExpiresAt,
		&cu.AdminID, &cu.AdminEmail, &cu.TOTPSecret, &cu.TOTPEnabled)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cu, nil
}

func (s *DB) DeleteChallenge(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM admin_challenges WHERE id = $1`, id)
	return s.mapError(err)
}

func (s *DB) ReplaceBackupCodes(ctx context.Context, adminID int64, codeHashes []string) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceBackupCodes")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM admin_backup_codes WHERE admin_id = $1`, adminID); err != nil {
		return s.mapError(err)
	}

	for _, codeHash := range codeHashes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO admin_backup_codes (admin_id, code_hash, created_at)
			VALUES ($1, $2, now())`,
			adminID, codeHash,
		); err != nil {
			return s.mapError(err)
		}
	}

	return tx.Commit(ctx)
}

func (s *DB) ListBackupCodes(ctx context.Context, adminID int64) (_ []entity.BackupCode, err error) {
	ctx, span := s.startSpan(ctx, "ListBackupCodes")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, admin_id, code_hash, created_at
		FROM admin_backup_codes
		WHERE admin_id = $1`, adminID,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BackupCode, error) {
		var bc entity.BackupCode
		sErr := row.Scan(&bc.ID, &bc.AdminID, &bc.CodeHash, &bc.CreatedAt)
		return bc, sErr
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

// ConsumeBackupCode deletes the code row; false means another login got
// there first.
func (s *DB) ConsumeBackupCode(ctx context.Context, id, adminID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeBackupCode")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		DELETE FROM admin_backup_codes WHERE id = $1 AND admin_id = $2`,
		id, adminID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
