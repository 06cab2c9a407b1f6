package models

import "time"

// Task defines the task model based on the 'tasks' table.
// Tasks belong to exactly one project and are deleted with it.
type Task struct {
	ID             TaskID       `json:"id" db:"id"`
	ProjectID      ProjectID    `json:"projectId" db:"project_id"`
	AssigneeID     *UserID      `json:"assigneeId,omitempty" db:"assignee_id"`
	CreatedByID    UserID       `json:"createdById" db:"created_by_id"`
	Title          string       `json:"title" db:"title"`
	Description    string       `json:"description" db:"description"`
	Status         TaskStatus   `json:"status" db:"status"`
	Priority       TaskPriority `json:"priority" db:"priority"`
	EstimatedHours *float64     `json:"estimatedHours,omitempty" db:"estimated_hours"`
	ActualHours    *float64     `json:"actualHours,omitempty" db:"actual_hours"`
	DueDate        *time.Time   `json:"dueDate,omitempty" db:"due_date"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
}
