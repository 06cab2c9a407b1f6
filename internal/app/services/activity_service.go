package services

import (
	"context"
	"fmt"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

const defaultActivityLimit = 100

// ActivityRepository is the data access surface the activity service needs.
// The log is append-only; there is no update or delete.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityEntry) error
	List(ctx context.Context, actorID *models.UserID, limit int) ([]*models.ActivityEntry, error)
}

// ActivityService defines the interface for the audit log
type ActivityService interface {
	Record(ctx context.Context, entry *models.ActivityEntry) error
	List(ctx context.Context, actorID *models.UserID, limit int) ([]*models.ActivityEntry, error)
}

type activityServiceImpl struct {
	activityRepo ActivityRepository
}

// NewActivityService creates a new activity service instance
func NewActivityService(activityRepo ActivityRepository) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
	}
}

func (s *activityServiceImpl) Record(ctx context.Context, entry *models.ActivityEntry) error {
	if entry.Action == "" {
		return fmt.Errorf("%w: action is required", apperrors.ErrValidationFailed)
	}
	return s.activityRepo.Create(ctx, entry)
}

func (s *activityServiceImpl) List(ctx context.Context, actorID *models.UserID, limit int) ([]*models.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activityRepo.List(ctx, actorID, limit)
}
