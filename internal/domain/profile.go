package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	UserID      uuid.UUID `db:"user_id" json:"-"`
	Email       string    `db:"email" json:"email"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	IsVerified  bool      `db:"is_verified" json:"is_verified"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileChange holds the fields of a profile edit that differ from the
// stored profile. Nil means unchanged.
type ProfileChange struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// NewProfileChange compares each requested field with the current profile and
// keeps only those that differ.
func NewProfileChange(current *UserProfile, firstName, lastName, phoneNumber *string) ProfileChange {
	var ch ProfileChange
	if firstName != nil && *firstName != current.FirstName {
		ch.FirstName = firstName
	}
	if lastName != nil && *lastName != current.LastName {
		ch.LastName = lastName
	}
	if phoneNumber != nil && *phoneNumber != current.PhoneNumber {
		ch.PhoneNumber = phoneNumber
	}
	return ch
}

func (c ProfileChange) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.PhoneNumber == nil
}

// Apply writes the changed fields onto p.
func (c ProfileChange) Apply(p *UserProfile) {
	if c.FirstName != nil {
		p.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		p.LastName = *c.LastName
	}
	if c.PhoneNumber != nil {
		p.PhoneNumber = *c.PhoneNumber
	}
}
