package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// DepartmentRepository is the data access surface the department service needs.
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id models.DepartmentID) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	SetActive(ctx context.Context, id models.DepartmentID, active bool) error
	Delete(ctx context.Context, id models.DepartmentID) error
}

// DepartmentService defines the interface for department operations
type DepartmentService interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id models.DepartmentID) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Deactivate(ctx context.Context, id models.DepartmentID) error
	Delete(ctx context.Context, id models.DepartmentID) error
}

type departmentServiceImpl struct {
	departmentRepo DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo DepartmentRepository) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
	}
}

func validateDepartment(department *models.Department) error {
	department.Name = strings.TrimSpace(department.Name)
	department.Code = strings.TrimSpace(department.Code)
	if department.Name == "" {
		return fmt.Errorf("%w: department name is required", apperrors.ErrValidationFailed)
	}
	if department.Code == "" {
		return fmt.Errorf("%w: department code is required", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *departmentServiceImpl) Create(ctx context.Context, department *models.Department) error {
	if err := validateDepartment(department); err != nil {
		return err
	}
	return s.departmentRepo.Create(ctx, department)
}

func (s *departmentServiceImpl) GetByID(ctx context.Context, id models.DepartmentID) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

func (s *departmentServiceImpl) GetAll(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

func (s *departmentServiceImpl) Update(ctx context.Context, department *models.Department) error {
	if err := validateDepartment(department); err != nil {
		return err
	}
	return s.departmentRepo.Update(ctx, department)
}

func (s *departmentServiceImpl) Deactivate(ctx context.Context, id models.DepartmentID) error {
	return s.departmentRepo.SetActive(ctx, id, false)
}

func (s *departmentServiceImpl) Delete(ctx context.Context, id models.DepartmentID) error {
	return s.departmentRepo.Delete(ctx, id)
}

// resolveActiveDepartment checks that a referenced department exists and is
// not deactivated. Shared by the profile and project services.
func resolveActiveDepartment(ctx context.Context, repo DepartmentRepository, id models.DepartmentID) error {
	department, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !department.IsActive {
		return apperrors.ErrDepartmentInactive
	}
	return nil
}
