package models

import "time"

// Intern defines the stagiaire profile based on the 'interns' table.
// One-to-one extension of a User with role STAGIAIRE.
type Intern struct {
	ID              InternID      `json:"id" db:"id"`
	UserID          UserID        `json:"userId" db:"user_id"`
	SchoolID        SchoolID      `json:"schoolId" db:"school_id"`
	DepartmentID    DepartmentID  `json:"departmentId" db:"department_id"`
	EncadreurID     *EncadreurID  `json:"encadreurId,omitempty" db:"encadreur_id"`
	ProjectID       *ProjectID    `json:"projectId,omitempty" db:"project_id"`
	AcademicLevel   AcademicLevel `json:"academicLevel" db:"academic_level"`
	Major           string        `json:"major" db:"major"`
	StartDate       time.Time     `json:"startDate" db:"start_date"`
	EndDate         time.Time     `json:"endDate" db:"end_date"`
	Status          InternStatus  `json:"status" db:"status"`
	EvaluationScore *float64      `json:"evaluationScore,omitempty" db:"evaluation_score"`
	User            *User         `json:"user,omitempty"`      // Relation, no db tag
	School          *School       `json:"school,omitempty"`    // Relation, no db tag
	Encadreur       *Encadreur    `json:"encadreur,omitempty"` // Relation, no db tag
}

// AssignmentDelta computes which encadreur counters an assignment change
// touches: dec is decremented, inc is incremented. Either may be nil.
// A change from an encadreur to itself (including nil to nil) touches nothing.
func AssignmentDelta(old, new *EncadreurID) (dec, inc *EncadreurID) {
	switch {
	case old == nil && new == nil:
		return nil, nil
	case old == nil:
		return nil, new
	case new == nil:
		return old, nil
	case *old == *new:
		return nil, nil
	default:
		return old, new
	}
}
