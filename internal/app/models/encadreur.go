package models

// Encadreur defines the supervisor profile based on the 'encadreurs' table.
// One-to-one extension of a User with role ENCADREUR.
//
// CurrentInternsCount and IsAvailable are maintained by the intern repository
// inside the transaction of each assignment change; callers never set them.
// The invariant is:
//
//	CurrentInternsCount == number of interns whose encadreur_id is this row
//	IsAvailable         == CurrentInternsCount < MaxInterns
type Encadreur struct {
	ID                  EncadreurID  `json:"id" db:"id"`
	UserID              UserID       `json:"userId" db:"user_id"`
	DepartmentID        DepartmentID `json:"departmentId" db:"department_id"`
	Specialization      string       `json:"specialization" db:"specialization"`
	MaxInterns          int          `json:"maxInterns" db:"max_interns"`
	CurrentInternsCount int          `json:"currentInternsCount" db:"current_interns_count"`
	IsAvailable         bool         `json:"isAvailable" db:"is_available"`
	User                *User        `json:"user,omitempty"`       // Relation, no db tag
	Department          *Department  `json:"department,omitempty"` // Relation, no db tag
}
