package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/logger"
)

// TaskRepository is the data access surface the task service needs.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id models.TaskID) (*models.Task, error)
	GetByProjectID(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error)
	GetByAssigneeID(ctx context.Context, assigneeID models.UserID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id models.TaskID) error
}

// TaskService defines the interface for task operations
type TaskService interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id models.TaskID) (*models.Task, error)
	GetByProject(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error)
	GetByAssignee(ctx context.Context, assigneeID models.UserID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id models.TaskID) error
}

type taskServiceImpl struct {
	taskRepo      TaskRepository
	projectRepo   ProjectRepository
	userRepo      UserRepository
	notifications NotificationWriter
}

// NewTaskService creates a new task service instance
func NewTaskService(
	taskRepo TaskRepository,
	projectRepo ProjectRepository,
	userRepo UserRepository,
	notifications NotificationWriter,
) TaskService {
	return &taskServiceImpl{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, task *models.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return fmt.Errorf("%w: task title is required", apperrors.ErrValidationFailed)
	}
	if _, err := s.projectRepo.GetByID(ctx, task.ProjectID); err != nil {
		return err
	}
	if task.AssigneeID != nil {
		if _, err := s.userRepo.GetByID(ctx, *task.AssigneeID); err != nil {
			return err
		}
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return err
	}

	if task.AssigneeID != nil {
		s.notifyAssignee(ctx, *task.AssigneeID, task)
	}
	return nil
}

func (s *taskServiceImpl) GetByID(ctx context.Context, id models.TaskID) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *taskServiceImpl) GetByProject(ctx context.Context, projectID models.ProjectID) ([]*models.Task, error) {
	return s.taskRepo.GetByProjectID(ctx, projectID)
}

func (s *taskServiceImpl) GetByAssignee(ctx context.Context, assigneeID models.UserID) ([]*models.Task, error) {
	return s.taskRepo.GetByAssigneeID(ctx, assigneeID)
}

// Update rewrites a task. A change of assignee notifies the new one.
func (s *taskServiceImpl) Update(ctx context.Context, task *models.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return fmt.Errorf("%w: task title is required", apperrors.ErrValidationFailed)
	}

	current, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if task.AssigneeID != nil && (current.AssigneeID == nil || *current.AssigneeID != *task.AssigneeID) {
		s.notifyAssignee(ctx, *task.AssigneeID, task)
	}
	return nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id models.TaskID) error {
	return s.taskRepo.Delete(ctx, id)
}

func (s *taskServiceImpl) notifyAssignee(ctx context.Context, userID models.UserID, task *models.Task) {
	ref := models.TaskRef(task.ID)
	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotifTask,
		Title:     "Task assigned",
		Message:   fmt.Sprintf("You have been assigned the task %q", task.Title),
		Reference: &ref,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		logger.Error().Err(err).Int64("userID", int64(userID)).Msg("Failed to send task notification")
	}
}
