package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeCommuter   UserType = "COMMUTER"
	UserTypeSaccoOwner UserType = "SACCO_OWNER"
	UserTypeOperator   UserType = "OPERATOR"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeCommuter, UserTypeSaccoOwner, UserTypeOperator:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`
	FullName     string    `db:"full_name" json:"full_name"`
	UserType     UserType  `db:"user_type" json:"user_type"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsVerified   bool      `db:"is_verified" json:"is_verified"`
	DateJoined   time.Time `db:"date_joined" json:"date_joined"`
}
