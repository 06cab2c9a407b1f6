package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
)

const taskColumns = "id, project_id, assignee_id, created_by_id, title, description, status, " +
	"priority, estimated_hours, actual_hours, due_date, completed_at, created_at"

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTask(row pgx.Row, t *models.Task) error {
	return row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.AssigneeID,
		&t.CreatedByID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.EstimatedHours,
		&t.ActualHours,
		&t.DueDate,
		&t.CompletedAt,
		&t.CreatedAt,
	)
}

func validateTask(task *models.Task) error {
	if task.Status == "" {
		task.Status = models.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Status.Valid() {
		return fmt.Errorf("%w: task status %q", apperrors.ErrInvalidEnumValue, task.Status)
	}
	if !task.Priority.Valid() {
		return fmt.Errorf("%w: task priority %q", apperrors.ErrInvalidEnumValue, task.Priority)
	}
	return nil
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := validateTask(task); err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("tasks").
		Columns("project_id", "assignee_id", "created_by_id", "title", "description",
			"status", "priority", "estimated_hours", "due_date").
		Values(task.ProjectID, task.AssigneeID, task.CreatedByID, task.Title, task.Description,
			task.Status, task.Priority, task.EstimatedHours, task.DueDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create task query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&task.ID, &task.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"task references a missing project or user")
		}
		return fmt.Errorf("error creating task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id models.TaskID) (*models.Task, error) {
	var task models.Task
	err := scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id), &task)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}

	return &task, nil
}

// GetByProjectID retrieves all tasks of a project
func (r *TaskRepository) GetByProjectID(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	return r.list(ctx, squirrel.Eq{"project_id": projectID})
}

// GetByAssigneeID retrieves all tasks assigned to a user
func (r *TaskRepository) GetByAssigneeID(ctx context.Context, assigneeID models.UserID) ([]*models.Task, error) {
	return r.list(ctx, squirrel.Eq{"assignee_id": assigneeID})
}

func (r *TaskRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.Task, error) {
	sql, args, err := r.sb.Select(taskColumns).
		From("tasks").
		Where(where).
		OrderBy("due_date NULLS LAST", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list tasks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var task models.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Update updates an existing task. Moving to DONE stamps completed_at; moving
// out of DONE clears it.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := validateTask(task); err != nil {
		return err
	}

	completedAt := squirrel.Expr("NULL")
	if task.Status == models.TaskDone {
		completedAt = squirrel.Expr("COALESCE(completed_at, CURRENT_TIMESTAMP)")
	}

	sql, args, err := r.sb.Update("tasks").
		Set("assignee_id", task.AssigneeID).
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("estimated_hours", task.EstimatedHours).
		Set("actual_hours", task.ActualHours).
		Set("due_date", task.DueDate).
		Set("completed_at", completedAt).
		Where(squirrel.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update task query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"task references a missing user")
		}
		return fmt.Errorf("error updating task: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// Delete deletes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id models.TaskID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}
