package models

import (
	"time"
)

// User defines the identity record based on the 'users' table.
// Role-specific attributes live in the encadreur/intern profile tables.
type User struct {
	ID            UserID        `json:"id" db:"id"`
	Email         string        `json:"email" db:"email"`
	Password      *string       `json:"-" db:"password"` // nil while the account is pending activation
	FirstName     string        `json:"firstName" db:"first_name"`
	LastName      string        `json:"lastName" db:"last_name"`
	Phone         *string       `json:"phone,omitempty" db:"phone"`
	Role          RoleType      `json:"role" db:"role"`
	AccountStatus AccountStatus `json:"accountStatus" db:"account_status"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// FullName returns the display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
