package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/manara-transit/backend/internal/db"
	"github.com/manara-transit/backend/internal/domain"
)

type profileRepository struct {
	db *sqlx.DB
}

func newProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	const op = "repository.profile.GetByUserID"

	const query = `
	SELECT p.user_id, u.email, p.first_name, p.last_name, p.phone_number, p.is_verified, p.created_at, p.updated_at
	FROM user_profile p
	JOIN user u ON u.id = p.user_id
	WHERE p.user_id = uuid_to_bin(?)
	`

	var profile domain.UserProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user_profile failed: %w", op, err)
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	const op = "repository.profile.Create"

	const query = `
	INSERT INTO user_profile (user_id, first_name, last_name, phone_number, is_verified, created_at, updated_at)
	VALUES (uuid_to_bin(:user_id), :first_name, :last_name, :phone_number, :is_verified, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert user_profile failed: %w", op, err)
	}

	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	const op = "repository.profile.Update"

	const query = `
	UPDATE user_profile
	SET first_name = :first_name, last_name = :last_name, phone_number = :phone_number,
		is_verified = :is_verified, updated_at = :updated_at
	WHERE user_id = uuid_to_bin(:user_id)
	`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("%s: update user_profile failed: %w", op, err)
	}

	return nil
}
