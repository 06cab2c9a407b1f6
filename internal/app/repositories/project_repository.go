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

const projectColumns = "id, department_id, encadreur_id, name, description, start_date, end_date, " +
	"status, progress_percentage, budget"

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProject(row pgx.Row, p *models.Project) error {
	return row.Scan(
		&p.ID,
		&p.DepartmentID,
		&p.EncadreurID,
		&p.Name,
		&p.Description,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.ProgressPercentage,
		&p.Budget,
	)
}

func validateProject(project *models.Project) error {
	if project.Status == "" {
		project.Status = models.ProjectPlanning
	}
	if !project.Status.Valid() {
		return fmt.Errorf("%w: project status %q", apperrors.ErrInvalidEnumValue, project.Status)
	}
	if project.ProgressPercentage < 0 || project.ProgressPercentage > 100 {
		return fmt.Errorf("%w: got %d", apperrors.ErrProgressOutOfRange, project.ProgressPercentage)
	}
	return nil
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := validateProject(project); err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("projects").
		Columns("department_id", "encadreur_id", "name", "description", "start_date", "end_date",
			"status", "progress_percentage", "budget").
		Values(project.DepartmentID, project.EncadreurID, project.Name, project.Description,
			project.StartDate, project.EndDate, project.Status, project.ProgressPercentage, project.Budget).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create project query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&project.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"project references a missing department or encadreur")
		}
		return fmt.Errorf("error creating project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	var project models.Project
	err := scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id), &project)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	return &project, nil
}

// GetByDepartmentID retrieves all projects in a department
func (r *ProjectRepository) GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Project, error) {
	sql, args, err := r.sb.Select(projectColumns).
		From("projects").
		Where(squirrel.Eq{"department_id": departmentID}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get projects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var project models.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, fmt.Errorf("error scanning project: %w", err)
		}
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// Update updates an existing project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := validateProject(project); err != nil {
		return err
	}

	sql, args, err := r.sb.Update("projects").
		Set("department_id", project.DepartmentID).
		Set("encadreur_id", project.EncadreurID).
		Set("name", project.Name).
		Set("description", project.Description).
		Set("start_date", project.StartDate).
		Set("end_date", project.EndDate).
		Set("status", project.Status).
		Set("progress_percentage", project.ProgressPercentage).
		Set("budget", project.Budget).
		Where(squirrel.Eq{"id": project.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update project query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"project references a missing department or encadreur")
		}
		return fmt.Errorf("error updating project: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// Delete deletes a project. Its tasks are removed by the schema's cascade;
// interns pointing at it are detached (SET NULL).
func (r *ProjectRepository) Delete(ctx context.Context, id models.ProjectID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}
