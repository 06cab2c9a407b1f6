package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
)

// SchoolRepository handles database operations for schools
type SchoolRepository struct {
	db *pgxpool.Pool
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{
		db: db,
	}
}

// Create creates a new school
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	query := `
		INSERT INTO schools (name, city, contact_email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, school.Name, school.City, school.ContactEmail).
		Scan(&school.ID, &school.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error creating school: %w", err)
	}

	return nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id models.SchoolID) (*models.School, error) {
	var school models.School
	err := r.db.QueryRow(ctx, `
		SELECT id, name, city, contact_email, created_at
		FROM schools
		WHERE id = $1`, id).Scan(
		&school.ID,
		&school.Name,
		&school.City,
		&school.ContactEmail,
		&school.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}

	return &school, nil
}

// GetAll retrieves all schools
func (r *SchoolRepository) GetAll(ctx context.Context) ([]*models.School, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, city, contact_email, created_at
		FROM schools
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		var school models.School
		if err := rows.Scan(
			&school.ID,
			&school.Name,
			&school.City,
			&school.ContactEmail,
			&school.CreatedAt,
		); err != nil {
			return nil, err
		}
		schools = append(schools, &school)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schools, nil
}

// Update updates an existing school
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE schools SET name = $1, city = $2, contact_email = $3 WHERE id = $4`,
		school.Name, school.City, school.ContactEmail, school.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error updating school: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}

	return nil
}

// Delete deletes a school by ID. Fails while any intern still references it.
func (r *SchoolRepository) Delete(ctx context.Context, id models.SchoolID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceInUse
		}
		return fmt.Errorf("error deleting school: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}

	return nil
}
