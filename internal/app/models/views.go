package models

import "time"

// Read-side projections. These are computed per query with joins, not stored.

// EncadreurDetails flattens an encadreur profile with its user identity and
// department for display. Inner joins: a missing identity or department row
// would drop the encadreur, which restrict-on-delete makes impossible.
type EncadreurDetails struct {
	ID                  EncadreurID  `json:"id"`
	UserID              UserID       `json:"userId"`
	FirstName           string       `json:"firstName"`
	LastName            string       `json:"lastName"`
	Email               string       `json:"email"`
	DepartmentID        DepartmentID `json:"departmentId"`
	DepartmentName      string       `json:"departmentName"`
	Specialization      string       `json:"specialization"`
	MaxInterns          int          `json:"maxInterns"`
	CurrentInternsCount int          `json:"currentInternsCount"`
	IsAvailable         bool         `json:"isAvailable"`
}

// InternDetails flattens an intern with identity, school, department and the
// optional encadreur and project. Left joins: unassigned interns still appear
// with the optional fields nil.
type InternDetails struct {
	ID             InternID      `json:"id"`
	UserID         UserID        `json:"userId"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Email          string        `json:"email"`
	SchoolName     string        `json:"schoolName"`
	DepartmentName string        `json:"departmentName"`
	EncadreurID    *EncadreurID  `json:"encadreurId,omitempty"`
	EncadreurName  *string       `json:"encadreurName,omitempty"`
	ProjectID      *ProjectID    `json:"projectId,omitempty"`
	ProjectName    *string       `json:"projectName,omitempty"`
	AcademicLevel  AcademicLevel `json:"academicLevel"`
	Major          string        `json:"major"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        time.Time     `json:"endDate"`
	Status         InternStatus  `json:"status"`
}

// DepartmentStats carries per-department counts. Departments with no
// dependents appear with all counts at zero.
type DepartmentStats struct {
	DepartmentID       DepartmentID `json:"departmentId"`
	DepartmentName     string       `json:"departmentName"`
	EncadreurCount     int          `json:"encadreurCount"`
	InternCount        int          `json:"internCount"`
	ActiveInternCount  int          `json:"activeInternCount"`
	ProjectCount       int          `json:"projectCount"`
	ActiveProjectCount int          `json:"activeProjectCount"`
}
