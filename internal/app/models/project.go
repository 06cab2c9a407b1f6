package models

import "time"

// Project defines the project model based on the 'projects' table.
type Project struct {
	ID                 ProjectID     `json:"id" db:"id"`
	DepartmentID       DepartmentID  `json:"departmentId" db:"department_id"`
	EncadreurID        *EncadreurID  `json:"encadreurId,omitempty" db:"encadreur_id"`
	Name               string        `json:"name" db:"name"`
	Description        string        `json:"description" db:"description"`
	StartDate          time.Time     `json:"startDate" db:"start_date"`
	EndDate            time.Time     `json:"endDate" db:"end_date"`
	Status             ProjectStatus `json:"status" db:"status"`
	ProgressPercentage int           `json:"progressPercentage" db:"progress_percentage"`
	Budget             *float64      `json:"budget,omitempty" db:"budget"`
}
