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
	"github.com/willy903/backintern/internal/pkg/logger"
)

const encadreurColumns = "id, user_id, department_id, specialization, max_interns, current_interns_count, is_available"

// EncadreurRepository handles database operations for encadreur profiles.
//
// current_interns_count and is_available are owned by the assignment
// transaction scripts (adjustEncadreurCounter); nothing in this repository
// writes them directly.
type EncadreurRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEncadreurRepository creates a new EncadreurRepository
func NewEncadreurRepository(db *pgxpool.Pool) *EncadreurRepository {
	return &EncadreurRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEncadreur(row pgx.Row, e *models.Encadreur) error {
	return row.Scan(
		&e.ID,
		&e.UserID,
		&e.DepartmentID,
		&e.Specialization,
		&e.MaxInterns,
		&e.CurrentInternsCount,
		&e.IsAvailable,
	)
}

// Create creates a new encadreur profile for a user. The counter starts at
// zero and availability at true.
func (r *EncadreurRepository) Create(ctx context.Context, encadreur *models.Encadreur) error {
	sql, args, err := r.sb.Insert("encadreurs").
		Columns("user_id", "department_id", "specialization", "max_interns").
		Values(encadreur.UserID, encadreur.DepartmentID, encadreur.Specialization, encadreur.MaxInterns).
		Suffix("RETURNING id, current_interns_count, is_available").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create encadreur query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&encadreur.ID, &encadreur.CurrentInternsCount, &encadreur.IsAvailable)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "encadreurs_user_id_key") {
			return apperrors.ErrProfileAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Int64("userID", int64(encadreur.UserID)).Msg("Error executing create encadreur query")
		return fmt.Errorf("error creating encadreur: %w", err)
	}

	logger.Info().Int64("encadreurID", int64(encadreur.ID)).Msg("Encadreur created")
	return nil
}

// GetByID retrieves an encadreur profile by its profile identifier.
func (r *EncadreurRepository) GetByID(ctx context.Context, id models.EncadreurID) (*models.Encadreur, error) {
	var encadreur models.Encadreur
	err := scanEncadreur(r.db.QueryRow(ctx,
		`SELECT `+encadreurColumns+` FROM encadreurs WHERE id = $1`, id), &encadreur)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEncadreurNotFound
		}
		return nil, fmt.Errorf("error retrieving encadreur: %w", err)
	}

	return &encadreur, nil
}

// GetByUserID retrieves an encadreur profile by the underlying user.
func (r *EncadreurRepository) GetByUserID(ctx context.Context, userID models.UserID) (*models.Encadreur, error) {
	var encadreur models.Encadreur
	err := scanEncadreur(r.db.QueryRow(ctx,
		`SELECT `+encadreurColumns+` FROM encadreurs WHERE user_id = $1`, userID), &encadreur)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEncadreurNotFound
		}
		return nil, fmt.Errorf("error retrieving encadreur: %w", err)
	}

	return &encadreur, nil
}

// GetByDepartmentID retrieves all encadreurs in a department.
func (r *EncadreurRepository) GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Encadreur, error) {
	sql, args, err := r.sb.Select(encadreurColumns).
		From("encadreurs").
		Where(squirrel.Eq{"department_id": departmentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get encadreurs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying encadreurs: %w", err)
	}
	defer rows.Close()

	var encadreurs []*models.Encadreur
	for rows.Next() {
		var encadreur models.Encadreur
		if err := scanEncadreur(rows, &encadreur); err != nil {
			return nil, fmt.Errorf("error scanning encadreur: %w", err)
		}
		encadreurs = append(encadreurs, &encadreur)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating encadreurs: %w", err)
	}

	return encadreurs, nil
}

// Update updates the externally settable fields. Changing max_interns
// recomputes availability against the current counter in the same statement.
func (r *EncadreurRepository) Update(ctx context.Context, encadreur *models.Encadreur) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE encadreurs
		SET department_id = $1,
		    specialization = $2,
		    max_interns = $3,
		    is_available = current_interns_count < $3
		WHERE id = $4`,
		encadreur.DepartmentID, encadreur.Specialization, encadreur.MaxInterns, encadreur.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error updating encadreur: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEncadreurNotFound
	}

	return nil
}

// Delete removes an encadreur profile. Interns still assigned keep the row
// alive through restrict semantics at the service layer; the schema releases
// them with SET NULL only when the service has already detached them.
func (r *EncadreurRepository) Delete(ctx context.Context, id models.EncadreurID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM encadreurs WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceInUse
		}
		return fmt.Errorf("error deleting encadreur: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEncadreurNotFound
	}

	return nil
}

// adjustEncadreurCounter applies a +1/-1 delta to an encadreur's intern
// counter inside the caller's transaction. The row is locked first so that
// concurrent assignments to the same encadreur serialize instead of losing
// updates. A decrement below zero is clamped and logged; it indicates
// pre-existing drift, not a caller error, so it is never surfaced.
func adjustEncadreurCounter(ctx context.Context, tx pgx.Tx, id models.EncadreurID, delta int) error {
	var count, maxInterns int
	err := tx.QueryRow(ctx, `
		SELECT current_interns_count, max_interns
		FROM encadreurs
		WHERE id = $1
		FOR UPDATE`, id).Scan(&count, &maxInterns)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEncadreurNotFound
		}
		return fmt.Errorf("error locking encadreur row: %w", err)
	}

	next := count + delta
	if next < 0 {
		logger.Warn().
			Int64("encadreurID", int64(id)).
			Int("count", count).
			Int("delta", delta).
			Msg("Encadreur counter would go negative, clamping to zero")
		next = 0
	}

	_, err = tx.Exec(ctx, `
		UPDATE encadreurs
		SET current_interns_count = $1, is_available = $2
		WHERE id = $3`,
		next, next < maxInterns, id)
	if err != nil {
		return fmt.Errorf("error updating encadreur counter: %w", err)
	}

	return nil
}

// applyAssignmentDelta adjusts the counters for an intern assignment change
// from old to new. Rows are locked in id order so two concurrent reassignments
// touching the same pair cannot deadlock.
func applyAssignmentDelta(ctx context.Context, tx pgx.Tx, old, new *models.EncadreurID) error {
	dec, inc := models.AssignmentDelta(old, new)
	if dec == nil && inc == nil {
		return nil
	}

	type step struct {
		id    models.EncadreurID
		delta int
	}
	var steps []step
	if dec != nil {
		steps = append(steps, step{*dec, -1})
	}
	if inc != nil {
		steps = append(steps, step{*inc, +1})
	}
	if len(steps) == 2 && steps[0].id > steps[1].id {
		steps[0], steps[1] = steps[1], steps[0]
	}

	for _, s := range steps {
		if err := adjustEncadreurCounter(ctx, tx, s.id, s.delta); err != nil {
			return err
		}
	}

	return nil
}
