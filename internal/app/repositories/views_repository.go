package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// ViewsRepository exposes the read-side projections. Everything here is
// recomputed per query from the base tables; nothing is materialized.
type ViewsRepository struct {
	db *pgxpool.Pool
}

// NewViewsRepository creates a new ViewsRepository
func NewViewsRepository(db *pgxpool.Pool) *ViewsRepository {
	return &ViewsRepository{
		db: db,
	}
}

const encadreurDetailsQuery = `
	SELECT e.id, e.user_id, u.first_name, u.last_name, u.email,
		d.id, d.name, e.specialization,
		e.max_interns, e.current_interns_count, e.is_available
	FROM encadreurs e
	JOIN users u ON e.user_id = u.id
	JOIN departments d ON e.department_id = d.id
`

func scanEncadreurDetails(row pgx.Row, d *models.EncadreurDetails) error {
	return row.Scan(
		&d.ID,
		&d.UserID,
		&d.FirstName,
		&d.LastName,
		&d.Email,
		&d.DepartmentID,
		&d.DepartmentName,
		&d.Specialization,
		&d.MaxInterns,
		&d.CurrentInternsCount,
		&d.IsAvailable,
	)
}

// GetEncadreurDetails returns the flattened view of one encadreur.
func (r *ViewsRepository) GetEncadreurDetails(ctx context.Context, id models.EncadreurID) (*models.EncadreurDetails, error) {
	var details models.EncadreurDetails
	err := scanEncadreurDetails(
		r.db.QueryRow(ctx, encadreurDetailsQuery+` WHERE e.id = $1`, id), &details)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEncadreurNotFound
		}
		return nil, fmt.Errorf("error retrieving encadreur details: %w", err)
	}

	return &details, nil
}

// ListEncadreurDetails returns the flattened view of all encadreurs.
func (r *ViewsRepository) ListEncadreurDetails(ctx context.Context) ([]*models.EncadreurDetails, error) {
	rows, err := r.db.Query(ctx, encadreurDetailsQuery+` ORDER BY u.last_name, u.first_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying encadreur details: %w", err)
	}
	defer rows.Close()

	var result []*models.EncadreurDetails
	for rows.Next() {
		var details models.EncadreurDetails
		if err := scanEncadreurDetails(rows, &details); err != nil {
			return nil, fmt.Errorf("error scanning encadreur details: %w", err)
		}
		result = append(result, &details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating encadreur details: %w", err)
	}

	return result, nil
}

// Left joins: an unassigned intern still shows up, with the encadreur and
// project columns null.
const internDetailsQuery = `
	SELECT i.id, i.user_id, u.first_name, u.last_name, u.email,
		s.name, d.name,
		e.id, eu.first_name || ' ' || eu.last_name,
		p.id, p.name,
		i.academic_level, i.major, i.start_date, i.end_date, i.status
	FROM interns i
	JOIN users u ON i.user_id = u.id
	JOIN schools s ON i.school_id = s.id
	JOIN departments d ON i.department_id = d.id
	LEFT JOIN encadreurs e ON i.encadreur_id = e.id
	LEFT JOIN users eu ON e.user_id = eu.id
	LEFT JOIN projects p ON i.project_id = p.id
`

func scanInternDetails(row pgx.Row, d *models.InternDetails) error {
	return row.Scan(
		&d.ID,
		&d.UserID,
		&d.FirstName,
		&d.LastName,
		&d.Email,
		&d.SchoolName,
		&d.DepartmentName,
		&d.EncadreurID,
		&d.EncadreurName,
		&d.ProjectID,
		&d.ProjectName,
		&d.AcademicLevel,
		&d.Major,
		&d.StartDate,
		&d.EndDate,
		&d.Status,
	)
}

// GetInternDetails returns the flattened view of one intern.
func (r *ViewsRepository) GetInternDetails(ctx context.Context, id models.InternID) (*models.InternDetails, error) {
	var details models.InternDetails
	err := scanInternDetails(
		r.db.QueryRow(ctx, internDetailsQuery+` WHERE i.id = $1`, id), &details)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("error retrieving intern details: %w", err)
	}

	return &details, nil
}

// ListInternDetails returns the flattened view of all interns.
func (r *ViewsRepository) ListInternDetails(ctx context.Context) ([]*models.InternDetails, error) {
	rows, err := r.db.Query(ctx, internDetailsQuery+` ORDER BY u.last_name, u.first_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying intern details: %w", err)
	}
	defer rows.Close()

	var result []*models.InternDetails
	for rows.Next() {
		var details models.InternDetails
		if err := scanInternDetails(rows, &details); err != nil {
			return nil, fmt.Errorf("error scanning intern details: %w", err)
		}
		result = append(result, &details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intern details: %w", err)
	}

	return result, nil
}

// GetDepartmentStats returns per-department counts. Outer joins keep
// departments with no dependents in the result with zero counts.
func (r *ViewsRepository) GetDepartmentStats(ctx context.Context) ([]*models.DepartmentStats, error) {
	query := `
		SELECT d.id, d.name,
			COUNT(DISTINCT e.id),
			COUNT(DISTINCT i.id),
			COUNT(DISTINCT i.id) FILTER (WHERE i.status = 'ACTIVE'),
			COUNT(DISTINCT p.id),
			COUNT(DISTINCT p.id) FILTER (WHERE p.status = 'IN_PROGRESS')
		FROM departments d
		LEFT JOIN encadreurs e ON e.department_id = d.id
		LEFT JOIN interns i ON i.department_id = d.id
		LEFT JOIN projects p ON p.department_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying department stats: %w", err)
	}
	defer rows.Close()

	var result []*models.DepartmentStats
	for rows.Next() {
		var stats models.DepartmentStats
		if err := rows.Scan(
			&stats.DepartmentID,
			&stats.DepartmentName,
			&stats.EncadreurCount,
			&stats.InternCount,
			&stats.ActiveInternCount,
			&stats.ProjectCount,
			&stats.ActiveProjectCount,
		); err != nil {
			return nil, fmt.Errorf("error scanning department stats: %w", err)
		}
		result = append(result, &stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department stats: %w", err)
	}

	return result, nil
}
