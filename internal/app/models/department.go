package models

import "time"

// Department defines the department reference table. Other entities point at
// departments by id; the name is never duplicated as free text elsewhere.
type Department struct {
	ID        DepartmentID `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Code      string       `json:"code" db:"code"`
	IsActive  bool         `json:"isActive" db:"is_active"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}
