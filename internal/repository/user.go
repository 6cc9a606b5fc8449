package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/manara-transit/backend/internal/db"
	"github.com/manara-transit/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, phone_number, full_name, user_type, password_hash, is_active, is_verified, date_joined`

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "repository.user.Create"

	const query = `
	INSERT INTO user
	(id, email, phone_number, full_name, user_type, password_hash, is_active, is_verified, date_joined)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PhoneNumber,
		user.FullName,
		user.UserType,
		user.PasswordHash,
		user.IsActive,
		user.IsVerified,
		user.DateJoined,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert user failed: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected failed: %w", op, err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user WHERE id = uuid_to_bin(?);`
	return r.getOne(ctx, "repository.user.GetOneByID", query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user WHERE email = ?;`
	return r.getOne(ctx, "repository.user.GetByEmail", query, email)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user WHERE phone_number = ?;`
	return r.getOne(ctx, "repository.user.GetByPhone", query, phone)
}

func (r *userRepository) getOne(ctx context.Context, op, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user failed: %w", op, err)
	}

	return &user, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE user SET is_verified = TRUE WHERE id = uuid_to_bin(?);`
	return r.updateOne(ctx, "repository.user.MarkVerified", query, id)
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE user SET is_active = FALSE WHERE id = uuid_to_bin(?);`
	return r.updateOne(ctx, "repository.user.Deactivate", query, id)
}

func (r *userRepository) updateOne(ctx context.Context, op, query string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update user failed: %w", op, err)
	}

	// MySQL reports 0 affected rows when the value is already set.
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return nil
}
