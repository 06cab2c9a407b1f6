package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/auth"
)

// UserRepository is the data access surface the user service needs.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id models.UserID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context, role *models.RoleType) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	SetPasswordAndActivate(ctx context.Context, id models.UserID, hashedPassword string) error
	UpdateAccountStatus(ctx context.Context, id models.UserID, status models.AccountStatus) error
	Delete(ctx context.Context, id models.UserID) error
}

// UserService defines the interface for identity operations
type UserService interface {
	Register(ctx context.Context, user *models.User) error
	Activate(ctx context.Context, id models.UserID, rawPassword string) error
	GetByID(ctx context.Context, id models.UserID) (*models.User, error)
	GetAll(ctx context.Context, role *models.RoleType) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	SetAccountStatus(ctx context.Context, id models.UserID, status models.AccountStatus) error
	Delete(ctx context.Context, id models.UserID) error
}

type userServiceImpl struct {
	userRepo UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo UserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: malformed email %q", apperrors.ErrValidationFailed, email)
	}
	return nil
}

// Register creates a new PENDING account. The role is fixed here and never
// changes afterwards.
func (s *userServiceImpl) Register(ctx context.Context, user *models.User) error {
	if err := validateEmail(user.Email); err != nil {
		return err
	}
	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}
	if !user.Role.Valid() {
		return fmt.Errorf("%w: role %q", apperrors.ErrInvalidEnumValue, user.Role)
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return s.userRepo.Create(ctx, user)
}

// Activate hashes the password and moves the account from PENDING to ACTIVE.
func (s *userServiceImpl) Activate(ctx context.Context, id models.UserID, rawPassword string) error {
	if len(rawPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidationFailed)
	}

	hashed, err := auth.HashPassword(rawPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.userRepo.SetPasswordAndActivate(ctx, id, hashed)
}

func (s *userServiceImpl) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userServiceImpl) GetAll(ctx context.Context, role *models.RoleType) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx, role)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}
	return s.userRepo.UpdateProfile(ctx, user)
}

func (s *userServiceImpl) SetAccountStatus(ctx context.Context, id models.UserID, status models.AccountStatus) error {
	return s.userRepo.UpdateAccountStatus(ctx, id, status)
}

// Delete purges an account. The repository releases any encadreur slot held
// through an intern profile in the same transaction; accounts still referenced
// elsewhere come back as ErrReferenceInUse.
func (s *userServiceImpl) Delete(ctx context.Context, id models.UserID) error {
	return s.userRepo.Delete(ctx, id)
}
