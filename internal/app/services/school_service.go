package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// SchoolRepository is the data access surface the school service needs.
type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id models.SchoolID) (*models.School, error)
	GetAll(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id models.SchoolID) error
}

// SchoolService defines the interface for school operations
type SchoolService interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id models.SchoolID) (*models.School, error)
	GetAll(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id models.SchoolID) error
}

type schoolServiceImpl struct {
	schoolRepo SchoolRepository
}

// NewSchoolService creates a new school service instance
func NewSchoolService(schoolRepo SchoolRepository) SchoolService {
	return &schoolServiceImpl{
		schoolRepo: schoolRepo,
	}
}

func (s *schoolServiceImpl) Create(ctx context.Context, school *models.School) error {
	school.Name = strings.TrimSpace(school.Name)
	if school.Name == "" {
		return fmt.Errorf("%w: school name is required", apperrors.ErrValidationFailed)
	}
	return s.schoolRepo.Create(ctx, school)
}

func (s *schoolServiceImpl) GetByID(ctx context.Context, id models.SchoolID) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

func (s *schoolServiceImpl) GetAll(ctx context.Context) ([]*models.School, error) {
	return s.schoolRepo.GetAll(ctx)
}

func (s *schoolServiceImpl) Update(ctx context.Context, school *models.School) error {
	school.Name = strings.TrimSpace(school.Name)
	if school.Name == "" {
		return fmt.Errorf("%w: school name is required", apperrors.ErrValidationFailed)
	}
	return s.schoolRepo.Update(ctx, school)
}

func (s *schoolServiceImpl) Delete(ctx context.Context, id models.SchoolID) error {
	return s.schoolRepo.Delete(ctx, id)
}
