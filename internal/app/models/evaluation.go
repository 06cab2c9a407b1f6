package models

import (
	"fmt"
	"math"
	"time"

	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// Score bounds shared by evaluation scores and interns.evaluation_score.
const (
	ScoreMin = 0.0
	ScoreMax = 20.0
)

// Evaluation defines the evaluation model based on the 'evaluations' table.
// OverallScore is derived from the three component scores on every write and
// overrides whatever the caller supplied.
type Evaluation struct {
	ID                   EvaluationID `json:"id" db:"id"`
	InternID             InternID     `json:"internId" db:"intern_id"`
	EncadreurID          EncadreurID  `json:"encadreurId" db:"encadreur_id"`
	TechnicalSkillsScore float64      `json:"technicalSkillsScore" db:"technical_skills_score"`
	SoftSkillsScore      float64      `json:"softSkillsScore" db:"soft_skills_score"`
	AttendanceScore      float64      `json:"attendanceScore" db:"attendance_score"`
	OverallScore         float64      `json:"overallScore" db:"overall_score"`
	Comments             string       `json:"comments" db:"comments"`
	EvaluationDate       time.Time    `json:"evaluationDate" db:"evaluation_date"`
}

// ValidateScore checks a single score against the [0,20] bound.
func ValidateScore(name string, value float64) error {
	if value < ScoreMin || value > ScoreMax {
		return fmt.Errorf("%w: %s must be between %g and %g, got %g",
			apperrors.ErrScoreOutOfRange, name, ScoreMin, ScoreMax, value)
	}
	return nil
}

// ComputeOverallScore derives the overall score as the unweighted mean of the
// three component scores, rounded to 2 decimals (the column scale). Each
// component is range-checked before the mean is taken.
func ComputeOverallScore(technical, soft, attendance float64) (float64, error) {
	if err := ValidateScore("technical skills score", technical); err != nil {
		return 0, err
	}
	if err := ValidateScore("soft skills score", soft); err != nil {
		return 0, err
	}
	if err := ValidateScore("attendance score", attendance); err != nil {
		return 0, err
	}
	mean := (technical + soft + attendance) / 3
	return math.Round(mean*100) / 100, nil
}

// DeriveOverallScore recomputes e.OverallScore from the component scores,
// replacing any caller-supplied value.
func (e *Evaluation) DeriveOverallScore() error {
	overall, err := ComputeOverallScore(e.TechnicalSkillsScore, e.SoftSkillsScore, e.AttendanceScore)
	if err != nil {
		return err
	}
	e.OverallScore = overall
	return nil
}
