package models

import "time"

// School defines the school reference table.
type School struct {
	ID           SchoolID  `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	City         string    `json:"city" db:"city"`
	ContactEmail *string   `json:"contactEmail,omitempty" db:"contact_email"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
