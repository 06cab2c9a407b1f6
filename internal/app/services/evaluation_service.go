package services

import (
	"context"
	"fmt"
	"time"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/logger"
)

// EvaluationRepository is the data access surface the evaluation service needs.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id models.EvaluationID) (*models.Evaluation, error)
	GetByInternID(ctx context.Context, internID models.InternID) ([]*models.Evaluation, error)
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id models.EvaluationID) error
}

// InternScoreWriter pushes the latest overall score onto the intern row.
type InternScoreWriter interface {
	GetByID(ctx context.Context, id models.InternID) (*models.Intern, error)
	SetEvaluationScore(ctx context.Context, id models.InternID, score float64) error
}

// EvaluationService defines the interface for evaluation operations
type EvaluationService interface {
	Record(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id models.EvaluationID) (*models.Evaluation, error)
	GetByIntern(ctx context.Context, internID models.InternID) ([]*models.Evaluation, error)
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id models.EvaluationID) error
}

type evaluationServiceImpl struct {
	evaluationRepo EvaluationRepository
	internRepo     InternScoreWriter
	encadreurRepo  EncadreurRepository
	notifications  NotificationWriter
	activity       ActivityWriter
}

// NewEvaluationService creates a new evaluation service instance
func NewEvaluationService(
	evaluationRepo EvaluationRepository,
	internRepo InternScoreWriter,
	encadreurRepo EncadreurRepository,
	notifications NotificationWriter,
	activity ActivityWriter,
) EvaluationService {
	return &evaluationServiceImpl{
		evaluationRepo: evaluationRepo,
		internRepo:     internRepo,
		encadreurRepo:  encadreurRepo,
		notifications:  notifications,
		activity:       activity,
	}
}

// Record persists a new evaluation and copies its derived overall score onto
// the intern row as the current standing. The repository derives the overall
// score; any caller-supplied value is discarded.
func (s *evaluationServiceImpl) Record(ctx context.Context, evaluation *models.Evaluation) error {
	intern, err := s.internRepo.GetByID(ctx, evaluation.InternID)
	if err != nil {
		return err
	}
	encadreur, err := s.encadreurRepo.GetByID(ctx, evaluation.EncadreurID)
	if err != nil {
		return err
	}

	if evaluation.EvaluationDate.IsZero() {
		evaluation.EvaluationDate = time.Now()
	}

	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		return err
	}

	s.propagateScore(ctx, evaluation)
	s.notifyEvaluation(ctx, intern.UserID, evaluation)

	entry := &models.ActivityEntry{
		ActorID:     encadreur.UserID,
		Action:      models.ActionEvaluate,
		EntityType:  string(models.EntityIntern),
		EntityID:    int64(evaluation.InternID),
		Description: fmt.Sprintf("evaluation recorded with overall score %.2f", evaluation.OverallScore),
	}
	if err := s.activity.Create(ctx, entry); err != nil {
		logger.Error().Err(err).Int64("internID", int64(evaluation.InternID)).Msg("Failed to record evaluation activity")
	}
	return nil
}

func (s *evaluationServiceImpl) GetByID(ctx context.Context, id models.EvaluationID) (*models.Evaluation, error) {
	return s.evaluationRepo.GetByID(ctx, id)
}

func (s *evaluationServiceImpl) GetByIntern(ctx context.Context, internID models.InternID) ([]*models.Evaluation, error) {
	return s.evaluationRepo.GetByInternID(ctx, internID)
}

// Update rewrites an evaluation. The intern's standing is refreshed from the
// newest evaluation afterwards, which may or may not be the one updated.
func (s *evaluationServiceImpl) Update(ctx context.Context, evaluation *models.Evaluation) error {
	if err := s.evaluationRepo.Update(ctx, evaluation); err != nil {
		return err
	}
	s.refreshStanding(ctx, evaluation.InternID)
	return nil
}

func (s *evaluationServiceImpl) Delete(ctx context.Context, id models.EvaluationID) error {
	evaluation, err := s.evaluationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.evaluationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshStanding(ctx, evaluation.InternID)
	return nil
}

// propagateScore copies the freshly derived overall score to the intern row.
// Failure here leaves the standing stale until the next evaluation write, so
// it is logged rather than unwinding the committed evaluation.
func (s *evaluationServiceImpl) propagateScore(ctx context.Context, evaluation *models.Evaluation) {
	if err := s.internRepo.SetEvaluationScore(ctx, evaluation.InternID, evaluation.OverallScore); err != nil {
		logger.Error().Err(err).
			Int64("internID", int64(evaluation.InternID)).
			Float64("score", evaluation.OverallScore).
			Msg("Failed to propagate evaluation score to intern")
	}
}

// refreshStanding recomputes the intern's current score from the newest
// remaining evaluation.
func (s *evaluationServiceImpl) refreshStanding(ctx context.Context, internID models.InternID) {
	evaluations, err := s.evaluationRepo.GetByInternID(ctx, internID)
	if err != nil {
		logger.Error().Err(err).Int64("internID", int64(internID)).Msg("Failed to reload evaluations")
		return
	}

	score := 0.0
	if len(evaluations) > 0 {
		score = evaluations[0].OverallScore
	}
	if err := s.internRepo.SetEvaluationScore(ctx, internID, score); err != nil {
		logger.Error().Err(err).Int64("internID", int64(internID)).Msg("Failed to refresh intern standing")
	}
}

func (s *evaluationServiceImpl) notifyEvaluation(ctx context.Context, userID models.UserID, evaluation *models.Evaluation) {
	ref := models.InternRef(evaluation.InternID)
	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotifEvaluation,
		Title:     "New evaluation",
		Message:   fmt.Sprintf("You received an evaluation with an overall score of %.2f/%g", evaluation.OverallScore, models.ScoreMax),
		Reference: &ref,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		logger.Error().Err(err).Int64("userID", int64(userID)).Msg("Failed to send evaluation notification")
	}
}
