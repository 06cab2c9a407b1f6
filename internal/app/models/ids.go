package models

// Identifier types for the distinct numbering spaces in the schema.
//
// A user and an encadreur profile are different rows with independent
// sequences; passing a UserID where an EncadreurID is expected has been a
// recurring integration bug, so the identifiers are distinct defined types
// and the assignment interfaces only accept the profile identifier.

// UserID identifies a row in the users table.
type UserID int64

// DepartmentID identifies a row in the departments table.
type DepartmentID int64

// SchoolID identifies a row in the schools table.
type SchoolID int64

// EncadreurID identifies an encadreur profile row, not the underlying user.
type EncadreurID int64

// InternID identifies an intern profile row, not the underlying user.
type InternID int64

// ProjectID identifies a row in the projects table.
type ProjectID int64

// TaskID identifies a row in the tasks table.
type TaskID int64

// EvaluationID identifies a row in the evaluations table.
type EvaluationID int64

// DocumentID identifies a row in the documents table.
type DocumentID int64

// NotificationID identifies a row in the notifications table.
type NotificationID int64
