package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// ProjectRepository is the data access surface the project service needs.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id models.ProjectID) (*models.Project, error)
	GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id models.ProjectID) error
}

// ProjectService defines the interface for project operations
type ProjectService interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id models.ProjectID) (*models.Project, error)
	GetByDepartment(ctx context.Context, departmentID models.DepartmentID) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateProgress(ctx context.Context, id models.ProjectID, progress int) error
	Delete(ctx context.Context, id models.ProjectID) error
}

type projectServiceImpl struct {
	projectRepo    ProjectRepository
	departmentRepo DepartmentRepository
	encadreurRepo  EncadreurRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(
	projectRepo ProjectRepository,
	departmentRepo DepartmentRepository,
	encadreurRepo EncadreurRepository,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:    projectRepo,
		departmentRepo: departmentRepo,
		encadreurRepo:  encadreurRepo,
	}
}

func (s *projectServiceImpl) validateReferences(ctx context.Context, project *models.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return fmt.Errorf("%w: project name is required", apperrors.ErrValidationFailed)
	}
	if project.EndDate.Before(project.StartDate) {
		return fmt.Errorf("%w: end date before start date", apperrors.ErrValidationFailed)
	}
	if err := resolveActiveDepartment(ctx, s.departmentRepo, project.DepartmentID); err != nil {
		return err
	}
	if project.EncadreurID != nil {
		if _, err := s.encadreurRepo.GetByID(ctx, *project.EncadreurID); err != nil {
			return err
		}
	}
	return nil
}

func (s *projectServiceImpl) Create(ctx context.Context, project *models.Project) error {
	if err := s.validateReferences(ctx, project); err != nil {
		return err
	}
	return s.projectRepo.Create(ctx, project)
}

func (s *projectServiceImpl) GetByID(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectServiceImpl) GetByDepartment(ctx context.Context, departmentID models.DepartmentID) ([]*models.Project, error) {
	return s.projectRepo.GetByDepartmentID(ctx, departmentID)
}

func (s *projectServiceImpl) Update(ctx context.Context, project *models.Project) error {
	if err := s.validateReferences(ctx, project); err != nil {
		return err
	}
	return s.projectRepo.Update(ctx, project)
}

// UpdateProgress sets the progress percentage, marking the project COMPLETED
// at 100 and moving a still-planned project to IN_PROGRESS on first advance.
func (s *projectServiceImpl) UpdateProgress(ctx context.Context, id models.ProjectID, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: got %d", apperrors.ErrProgressOutOfRange, progress)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	project.ProgressPercentage = progress
	switch {
	case progress == 100:
		project.Status = models.ProjectCompleted
	case progress > 0 && project.Status == models.ProjectPlanning:
		project.Status = models.ProjectInProgress
	}

	return s.projectRepo.Update(ctx, project)
}

func (s *projectServiceImpl) Delete(ctx context.Context, id models.ProjectID) error {
	return s.projectRepo.Delete(ctx, id)
}
