package services

import (
	"context"
	"fmt"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// EncadreurRepository is the data access surface the encadreur service needs.
type EncadreurRepository interface {
	Create(ctx context.Context, encadreur *models.Encadreur) error
	GetByID(ctx context.Context, id models.EncadreurID) (*models.Encadreur, error)
	GetByUserID(ctx context.Context, userID models.UserID) (*models.Encadreur, error)
	GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Encadreur, error)
	Update(ctx context.Context, encadreur *models.Encadreur) error
	Delete(ctx context.Context, id models.EncadreurID) error
}

// EncadreurViews is the read-side projection surface for encadreurs.
type EncadreurViews interface {
	GetEncadreurDetails(ctx context.Context, id models.EncadreurID) (*models.EncadreurDetails, error)
	ListEncadreurDetails(ctx context.Context) ([]*models.EncadreurDetails, error)
}

// EncadreurService defines the interface for encadreur profile operations
type EncadreurService interface {
	CreateProfile(ctx context.Context, encadreur *models.Encadreur) error
	GetByID(ctx context.Context, id models.EncadreurID) (*models.Encadreur, error)
	GetByUserID(ctx context.Context, userID models.UserID) (*models.Encadreur, error)
	GetByDepartment(ctx context.Context, departmentID models.DepartmentID) ([]*models.Encadreur, error)
	GetDetails(ctx context.Context, id models.EncadreurID) (*models.EncadreurDetails, error)
	ListDetails(ctx context.Context) ([]*models.EncadreurDetails, error)
	Update(ctx context.Context, encadreur *models.Encadreur) error
	Delete(ctx context.Context, id models.EncadreurID) error
}

type encadreurServiceImpl struct {
	encadreurRepo  EncadreurRepository
	userRepo       UserRepository
	departmentRepo DepartmentRepository
	views          EncadreurViews
}

// NewEncadreurService creates a new encadreur service instance
func NewEncadreurService(
	encadreurRepo EncadreurRepository,
	userRepo UserRepository,
	departmentRepo DepartmentRepository,
	views EncadreurViews,
) EncadreurService {
	return &encadreurServiceImpl{
		encadreurRepo:  encadreurRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		views:          views,
	}
}

// CreateProfile creates an encadreur profile for an existing user. The user
// must carry the ENCADREUR role and the department must be active.
func (s *encadreurServiceImpl) CreateProfile(ctx context.Context, encadreur *models.Encadreur) error {
	user, err := s.userRepo.GetByID(ctx, encadreur.UserID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleEncadreur {
		return fmt.Errorf("%w: user %d has role %s", apperrors.ErrRoleMismatch, user.ID, user.Role)
	}

	if err := resolveActiveDepartment(ctx, s.departmentRepo, encadreur.DepartmentID); err != nil {
		return err
	}

	if encadreur.MaxInterns <= 0 {
		return fmt.Errorf("%w: max interns must be positive", apperrors.ErrValidationFailed)
	}

	return s.encadreurRepo.Create(ctx, encadreur)
}

func (s *encadreurServiceImpl) GetByID(ctx context.Context, id models.EncadreurID) (*models.Encadreur, error) {
	return s.encadreurRepo.GetByID(ctx, id)
}

func (s *encadreurServiceImpl) GetByUserID(ctx context.Context, userID models.UserID) (*models.Encadreur, error) {
	return s.encadreurRepo.GetByUserID(ctx, userID)
}

func (s *encadreurServiceImpl) GetByDepartment(ctx context.Context, departmentID models.DepartmentID) ([]*models.Encadreur, error) {
	return s.encadreurRepo.GetByDepartmentID(ctx, departmentID)
}

func (s *encadreurServiceImpl) GetDetails(ctx context.Context, id models.EncadreurID) (*models.EncadreurDetails, error) {
	return s.views.GetEncadreurDetails(ctx, id)
}

func (s *encadreurServiceImpl) ListDetails(ctx context.Context) ([]*models.EncadreurDetails, error) {
	return s.views.ListEncadreurDetails(ctx)
}

func (s *encadreurServiceImpl) Update(ctx context.Context, encadreur *models.Encadreur) error {
	if err := resolveActiveDepartment(ctx, s.departmentRepo, encadreur.DepartmentID); err != nil {
		return err
	}
	if encadreur.MaxInterns <= 0 {
		return fmt.Errorf("%w: max interns must be positive", apperrors.ErrValidationFailed)
	}
	return s.encadreurRepo.Update(ctx, encadreur)
}

// Delete removes an encadreur profile. Interns still assigned must be
// detached first, through the intern service, so the counters stay right;
// the schema would silently SET NULL on them otherwise.
func (s *encadreurServiceImpl) Delete(ctx context.Context, id models.EncadreurID) error {
	encadreur, err := s.encadreurRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if encadreur.CurrentInternsCount > 0 {
		return apperrors.ErrReferenceInUse
	}
	return s.encadreurRepo.Delete(ctx, id)
}
