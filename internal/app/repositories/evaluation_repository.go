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

const evaluationColumns = "id, intern_id, encadreur_id, technical_skills_score, soft_skills_score, " +
	"attendance_score, overall_score, comments, evaluation_date"

// EvaluationRepository handles database operations for evaluations.
//
// overall_score is derived from the three component scores on every write;
// a caller-supplied value is discarded.
type EvaluationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEvaluation(row pgx.Row, e *models.Evaluation) error {
	return row.Scan(
		&e.ID,
		&e.InternID,
		&e.EncadreurID,
		&e.TechnicalSkillsScore,
		&e.SoftSkillsScore,
		&e.AttendanceScore,
		&e.OverallScore,
		&e.Comments,
		&e.EvaluationDate,
	)
}

// Create inserts an evaluation. Scores are range-checked and the overall
// score derived before anything reaches the database.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if err := evaluation.DeriveOverallScore(); err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("evaluations").
		Columns("intern_id", "encadreur_id", "technical_skills_score", "soft_skills_score",
			"attendance_score", "overall_score", "comments", "evaluation_date").
		Values(evaluation.InternID, evaluation.EncadreurID, evaluation.TechnicalSkillsScore,
			evaluation.SoftSkillsScore, evaluation.AttendanceScore, evaluation.OverallScore,
			evaluation.Comments, evaluation.EvaluationDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create evaluation query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&evaluation.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				"evaluation references a missing intern or encadreur")
		}
		return fmt.Errorf("error creating evaluation: %w", err)
	}

	return nil
}

// GetByID retrieves an evaluation by ID
func (r *EvaluationRepository) GetByID(ctx context.Context, id models.EvaluationID) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := scanEvaluation(r.db.QueryRow(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations WHERE id = $1`, id), &evaluation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}

	return &evaluation, nil
}

// GetByInternID retrieves all evaluations of an intern, newest first.
func (r *EvaluationRepository) GetByInternID(ctx context.Context, internID models.InternID) ([]*models.Evaluation, error) {
	sql, args, err := r.sb.Select(evaluationColumns).
		From("evaluations").
		Where(squirrel.Eq{"intern_id": internID}).
		OrderBy("evaluation_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get evaluations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []*models.Evaluation
	for rows.Next() {
		var evaluation models.Evaluation
		if err := scanEvaluation(rows, &evaluation); err != nil {
			return nil, fmt.Errorf("error scanning evaluation: %w", err)
		}
		evaluations = append(evaluations, &evaluation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluations: %w", err)
	}

	return evaluations, nil
}

// Update rewrites the component scores and comments of an evaluation; the
// overall score is re-derived, never taken from the caller.
func (r *EvaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation) error {
	if err := evaluation.DeriveOverallScore(); err != nil {
		return err
	}

	sql, args, err := r.sb.Update("evaluations").
		Set("technical_skills_score", evaluation.TechnicalSkillsScore).
		Set("soft_skills_score", evaluation.SoftSkillsScore).
		Set("attendance_score", evaluation.AttendanceScore).
		Set("overall_score", evaluation.OverallScore).
		Set("comments", evaluation.Comments).
		Set("evaluation_date", evaluation.EvaluationDate).
		Where(squirrel.Eq{"id": evaluation.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update evaluation query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating evaluation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEvaluationNotFound
	}

	return nil
}

// Delete deletes an evaluation by ID
func (r *EvaluationRepository) Delete(ctx context.Context, id models.EvaluationID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting evaluation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEvaluationNotFound
	}

	return nil
}
