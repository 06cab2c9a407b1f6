package models

import "time"

// Document defines a file attached to an intern, a project or a task.
type Document struct {
	ID           DocumentID   `json:"id" db:"id"`
	Entity       EntityRef    `json:"entity"`
	UploadedByID UserID       `json:"uploadedById" db:"uploaded_by_id"`
	Kind         DocumentKind `json:"kind" db:"kind"`
	FileName     string       `json:"fileName" db:"file_name"`
	StoredName   string       `json:"storedName" db:"stored_name"`
	ContentType  string       `json:"contentType" db:"content_type"`
	SizeBytes    int64        `json:"sizeBytes" db:"size_bytes"`
	UploadedAt   time.Time    `json:"uploadedAt" db:"uploaded_at"`
}
