package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/db"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/dberrors"
	"github.com/willy903/backintern/internal/pkg/logger"
)

const internColumns = "id, user_id, school_id, department_id, encadreur_id, project_id, " +
	"academic_level, major, start_date, end_date, status, evaluation_score"

// InternRepository handles database operations for intern profiles.
//
// Every write that touches encadreur_id also maintains the encadreur counter
// in the same transaction; the counter is never left to drift from the set of
// interns pointing at an encadreur.
type InternRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternRepository creates a new InternRepository
func NewInternRepository(db *pgxpool.Pool) *InternRepository {
	return &InternRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanIntern(row pgx.Row, i *models.Intern) error {
	return row.Scan(
		&i.ID,
		&i.UserID,
		&i.SchoolID,
		&i.DepartmentID,
		&i.EncadreurID,
		&i.ProjectID,
		&i.AcademicLevel,
		&i.Major,
		&i.StartDate,
		&i.EndDate,
		&i.Status,
		&i.EvaluationScore,
	)
}

// Create inserts an intern profile. When the intern arrives already assigned
// to an encadreur, that encadreur's counter is incremented in the same
// transaction.
func (r *InternRepository) Create(ctx context.Context, intern *models.Intern) error {
	if !intern.AcademicLevel.Valid() {
		return fmt.Errorf("%w: academic level %q", apperrors.ErrInvalidEnumValue, intern.AcademicLevel)
	}
	if intern.Status == "" {
		intern.Status = models.InternPending
	}
	if !intern.Status.Valid() {
		return fmt.Errorf("%w: intern status %q", apperrors.ErrInvalidEnumValue, intern.Status)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("interns").
			Columns("user_id", "school_id", "department_id", "encadreur_id", "project_id",
				"academic_level", "major", "start_date", "end_date", "status").
			Values(intern.UserID, intern.SchoolID, intern.DepartmentID, intern.EncadreurID, intern.ProjectID,
				intern.AcademicLevel, intern.Major, intern.StartDate, intern.EndDate, intern.Status).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create intern query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&intern.ID); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "interns_user_id_key") {
				return apperrors.ErrProfileAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NewCustomError(apperrors.ErrValidationFailed,
					"intern references a missing school, department, encadreur or project")
			}
			logger.Error().Err(err).Int64("userID", int64(intern.UserID)).Msg("Error executing create intern query")
			return fmt.Errorf("error creating intern: %w", err)
		}

		if err := applyAssignmentDelta(ctx, tx, nil, intern.EncadreurID); err != nil {
			return err
		}

		logger.Info().Int64("internID", int64(intern.ID)).Msg("Intern created")
		return nil
	})
}

// GetByID retrieves an intern profile by its profile identifier.
func (r *InternRepository) GetByID(ctx context.Context, id models.InternID) (*models.Intern, error) {
	var intern models.Intern
	err := scanIntern(r.db.QueryRow(ctx,
		`SELECT `+internColumns+` FROM interns WHERE id = $1`, id), &intern)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("error retrieving intern: %w", err)
	}

	return &intern, nil
}

// GetByUserID retrieves an intern profile by the underlying user.
func (r *InternRepository) GetByUserID(ctx context.Context, userID models.UserID) (*models.Intern, error) {
	var intern models.Intern
	err := scanIntern(r.db.QueryRow(ctx,
		`SELECT `+internColumns+` FROM interns WHERE user_id = $1`, userID), &intern)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("error retrieving intern: %w", err)
	}

	return &intern, nil
}

// GetByEncadreurID retrieves all interns currently assigned to an encadreur.
func (r *InternRepository) GetByEncadreurID(ctx context.Context, encadreurID models.EncadreurID) ([]*models.Intern, error) {
	return r.list(ctx, squirrel.Eq{"encadreur_id": encadreurID})
}

// GetByDepartmentID retrieves all interns in a department.
func (r *InternRepository) GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Intern, error) {
	return r.list(ctx, squirrel.Eq{"department_id": departmentID})
}

func (r *InternRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.Intern, error) {
	sql, args, err := r.sb.Select(internColumns).
		From("interns").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list interns query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying interns: %w", err)
	}
	defer rows.Close()

	var interns []*models.Intern
	for rows.Next() {
		var intern models.Intern
		if err := scanIntern(rows, &intern); err != nil {
			return nil, fmt.Errorf("error scanning intern: %w", err)
		}
		interns = append(interns, &intern)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interns: %w", err)
	}

	return interns, nil
}

// Update updates the intern fields that do not participate in the capacity
// invariant. encadreur_id changes must go through SetEncadreur.
func (r *InternRepository) Update(ctx context.Context, intern *models.Intern) error {
	if !intern.AcademicLevel.Valid() {
		return fmt.Errorf("%w: academic level %q", apperrors.ErrInvalidEnumValue, intern.AcademicLevel)
	}
	if !intern.Status.Valid() {
		return fmt.Errorf("%w: intern status %q", apperrors.ErrInvalidEnumValue, intern.Status)
	}

	sql, args, err := r.sb.Update("interns").
		Set("school_id", intern.SchoolID).
		Set("department_id", intern.DepartmentID).
		Set("project_id", intern.ProjectID).
		Set("academic_level", intern.AcademicLevel).
		Set("major", intern.Major).
		Set("start_date", intern.StartDate).
		Set("end_date", intern.EndDate).
		Set("status", intern.Status).
		Where(squirrel.Eq{"id": intern.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update intern query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"intern references a missing school, department or project")
		}
		return fmt.Errorf("error updating intern: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}

	return nil
}

// SetEncadreur changes the intern's encadreur assignment. The intern row is
// locked, the previous and new encadreur counters are adjusted, and all of it
// commits atomically with the assignment itself. Reassigning to the current
// encadreur is a no-op on the counters.
func (r *InternRepository) SetEncadreur(ctx context.Context, id models.InternID, encadreurID *models.EncadreurID) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current *models.EncadreurID
		err := tx.QueryRow(ctx,
			`SELECT encadreur_id FROM interns WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInternNotFound
			}
			return fmt.Errorf("error locking intern row: %w", err)
		}

		dec, inc := models.AssignmentDelta(current, encadreurID)
		if dec == nil && inc == nil {
			return nil
		}

		_, err = tx.Exec(ctx,
			`UPDATE interns SET encadreur_id = $1 WHERE id = $2`, encadreurID, id)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrEncadreurNotFound
			}
			return fmt.Errorf("error updating intern assignment: %w", err)
		}

		if err := applyAssignmentDelta(ctx, tx, current, encadreurID); err != nil {
			return err
		}

		logger.Info().
			Int64("internID", int64(id)).
			Interface("from", current).
			Interface("to", encadreurID).
			Msg("Intern assignment changed")
		return nil
	})
}

// SetProject changes the intern's project reference.
func (r *InternRepository) SetProject(ctx context.Context, id models.InternID, projectID *models.ProjectID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE interns SET project_id = $1 WHERE id = $2`, projectID, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("error updating intern project: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}

	return nil
}

// SetEvaluationScore stores the intern's latest overall evaluation score.
func (r *InternRepository) SetEvaluationScore(ctx context.Context, id models.InternID, score float64) error {
	if err := models.ValidateScore("evaluation score", score); err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE interns SET evaluation_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return fmt.Errorf("error updating intern evaluation score: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInternNotFound
	}

	return nil
}

// Delete removes an intern profile and releases its encadreur slot in the
// same transaction.
func (r *InternRepository) Delete(ctx context.Context, id models.InternID) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current *models.EncadreurID
		err := tx.QueryRow(ctx,
			`SELECT encadreur_id FROM interns WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInternNotFound
			}
			return fmt.Errorf("error locking intern row: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM interns WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting intern: %w", err)
		}

		if err := applyAssignmentDelta(ctx, tx, current, nil); err != nil {
			return err
		}

		logger.Info().Int64("internID", int64(id)).Msg("Intern deleted")
		return nil
	})
}

// releaseEncadreurSlotByUser decrements the counter for the intern profile of
// a user about to be purged. Used by the user repository so that the cascade
// delete of the profile row cannot leave the counter stale.
func releaseEncadreurSlotByUser(ctx context.Context, tx pgx.Tx, userID models.UserID) error {
	var current *models.EncadreurID
	err := tx.QueryRow(ctx,
		`SELECT encadreur_id FROM interns WHERE user_id = $1 FOR UPDATE`, userID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil // user has no intern profile
		}
		return fmt.Errorf("error locking intern row: %w", err)
	}

	return applyAssignmentDelta(ctx, tx, current, nil)
}
