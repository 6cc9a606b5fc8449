package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/manara-transit/backend/internal/domain"
)

type otpCodeRepository struct {
	db *sqlx.DB
}

func newOTPCodeRepository(db *sqlx.DB) *otpCodeRepository {
	return &otpCodeRepository{
		db: db,
	}
}

// InvalidateLive collapses the expiry of every live code of the user to now.
func (r *otpCodeRepository) InvalidateLive(ctx context.Context, userID uuid.UUID, now time.Time) error {
	const op = "repository.otpCode.InvalidateLive"

	const query = `
	UPDATE otp_code SET expires_at = ?
	WHERE user_id = uuid_to_bin(?) AND is_used = FALSE AND expires_at > ?
	`

	if _, err := r.db.ExecContext(ctx, query, now, userID, now); err != nil {
		return fmt.Errorf("%s: update otp_code failed: %w", op, err)
	}

	return nil
}

func (r *otpCodeRepository) Create(ctx context.Context, code *domain.OTPCode) error {
	const op = "repository.otpCode.Create"

	const query = `
	INSERT INTO otp_code (id, user_id, code, is_used, created_at, expires_at)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :code, :is_used, :created_at, :expires_at)
	`

	res, err := r.db.NamedExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("%s: insert otp_code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *otpCodeRepository) FindLive(ctx context.Context, userID uuid.UUID, code string, now time.Time) (*domain.OTPCode, error) {
	const op = "repository.otpCode.FindLive"

	const query = `
	SELECT id, user_id, code, is_used, created_at, expires_at
	FROM otp_code
	WHERE user_id = uuid_to_bin(?) AND code = ? AND is_used = FALSE AND expires_at > ?
	ORDER BY created_at DESC
	LIMIT 1
	`

	var otp domain.OTPCode
	if err := r.db.GetContext(ctx, &otp, query, userID, code, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select otp_code failed: %w", op, err)
	}

	return &otp, nil
}

// Consume marks a matching live code used. Of several concurrent callers
// presenting the same code at most one gets a nil error; the rest see
// domain.ErrNotFound, as does a wrong, expired or already used code.
func (r *otpCodeRepository) Consume(ctx context.Context, userID uuid.UUID, code string, now time.Time) error {
	const op = "repository.otpCode.Consume"

	const query = `
	UPDATE otp_code SET is_used = TRUE
	WHERE user_id = uuid_to_bin(?) AND code = ? AND is_used = FALSE AND expires_at > ?
	LIMIT 1
	`

	res, err := r.db.ExecContext(ctx, query, userID, code, now)
	if err != nil {
		return fmt.Errorf("%s: update otp_code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *otpCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.otpCode.Delete"

	const query = `DELETE FROM otp_code WHERE id = uuid_to_bin(?)`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: delete otp_code failed: %w", op, err)
	}

	return nil
}

func (r *otpCodeRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.otpCode.PurgeExpired"

	const query = `DELETE FROM otp_code WHERE expires_at < ?`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: delete otp_code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
