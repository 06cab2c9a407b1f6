package services

import (
	"context"
	"fmt"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/logger"
)

// InternRepository is the data access surface the intern service needs.
type InternRepository interface {
	Create(ctx context.Context, intern *models.Intern) error
	GetByID(ctx context.Context, id models.InternID) (*models.Intern, error)
	GetByUserID(ctx context.Context, userID models.UserID) (*models.Intern, error)
	GetByEncadreurID(ctx context.Context, encadreurID models.EncadreurID) ([]*models.Intern, error)
	GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Intern, error)
	Update(ctx context.Context, intern *models.Intern) error
	SetEncadreur(ctx context.Context, id models.InternID, encadreurID *models.EncadreurID) error
	SetProject(ctx context.Context, id models.InternID, projectID *models.ProjectID) error
	Delete(ctx context.Context, id models.InternID) error
}

// SchoolResolver checks that a referenced school exists.
type SchoolResolver interface {
	GetByID(ctx context.Context, id models.SchoolID) (*models.School, error)
}

// NotificationWriter sends notifications out of assignment changes.
type NotificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// ActivityWriter appends audit entries.
type ActivityWriter interface {
	Create(ctx context.Context, entry *models.ActivityEntry) error
}

// InternViews is the read-side projection surface for interns.
type InternViews interface {
	GetInternDetails(ctx context.Context, id models.InternID) (*models.InternDetails, error)
	ListInternDetails(ctx context.Context) ([]*models.InternDetails, error)
}

// InternService defines the interface for intern profile operations.
//
// Assignment operations take the encadreur profile identifier, never the
// underlying user identifier.
type InternService interface {
	CreateIntern(ctx context.Context, actorID models.UserID, intern *models.Intern) error
	GetByID(ctx context.Context, id models.InternID) (*models.Intern, error)
	GetByEncadreur(ctx context.Context, encadreurID models.EncadreurID) ([]*models.Intern, error)
	GetDetails(ctx context.Context, id models.InternID) (*models.InternDetails, error)
	ListDetails(ctx context.Context) ([]*models.InternDetails, error)
	Update(ctx context.Context, intern *models.Intern) error
	AssignEncadreur(ctx context.Context, actorID models.UserID, internID models.InternID, encadreurID models.EncadreurID) error
	UnassignEncadreur(ctx context.Context, actorID models.UserID, internID models.InternID) error
	AssignProject(ctx context.Context, internID models.InternID, projectID models.ProjectID) error
	Delete(ctx context.Context, id models.InternID) error
}

type internServiceImpl struct {
	internRepo     InternRepository
	encadreurRepo  EncadreurRepository
	userRepo       UserRepository
	schoolRepo     SchoolResolver
	departmentRepo DepartmentRepository
	notifications  NotificationWriter
	activity       ActivityWriter
	views          InternViews
}

// NewInternService creates a new intern service instance
func NewInternService(
	internRepo InternRepository,
	encadreurRepo EncadreurRepository,
	userRepo UserRepository,
	schoolRepo SchoolResolver,
	departmentRepo DepartmentRepository,
	notifications NotificationWriter,
	activity ActivityWriter,
	views InternViews,
) InternService {
	return &internServiceImpl{
		internRepo:     internRepo,
		encadreurRepo:  encadreurRepo,
		userRepo:       userRepo,
		schoolRepo:     schoolRepo,
		departmentRepo: departmentRepo,
		notifications:  notifications,
		activity:       activity,
		views:          views,
	}
}

// checkCapacity refuses an assignment when the encadreur is full. The data
// layer itself only maintains the counter; capacity is a business rule
// enforced here, so an administrator bypassing the service could still
// overfill an encadreur and would only see it through is_available.
func (s *internServiceImpl) checkCapacity(ctx context.Context, encadreurID models.EncadreurID) error {
	encadreur, err := s.encadreurRepo.GetByID(ctx, encadreurID)
	if err != nil {
		return err
	}
	if !encadreur.IsAvailable {
		return fmt.Errorf("%w: encadreur %d has %d/%d interns",
			apperrors.ErrEncadreurAtCapacity, encadreurID,
			encadreur.CurrentInternsCount, encadreur.MaxInterns)
	}
	return nil
}

// CreateIntern creates an intern profile after resolving every reference it
// carries. An initial encadreur assignment goes through the capacity check.
func (s *internServiceImpl) CreateIntern(ctx context.Context, actorID models.UserID, intern *models.Intern) error {
	user, err := s.userRepo.GetByID(ctx, intern.UserID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleStagiaire {
		return fmt.Errorf("%w: user %d has role %s", apperrors.ErrRoleMismatch, user.ID, user.Role)
	}

	if _, err := s.schoolRepo.GetByID(ctx, intern.SchoolID); err != nil {
		return err
	}
	if err := resolveActiveDepartment(ctx, s.departmentRepo, intern.DepartmentID); err != nil {
		return err
	}
	if intern.EndDate.Before(intern.StartDate) {
		return fmt.Errorf("%w: end date before start date", apperrors.ErrValidationFailed)
	}
	if intern.EncadreurID != nil {
		if err := s.checkCapacity(ctx, *intern.EncadreurID); err != nil {
			return err
		}
	}

	if err := s.internRepo.Create(ctx, intern); err != nil {
		return err
	}

	s.recordActivity(ctx, actorID, models.ActionCreate, intern.ID, "intern profile created")
	return nil
}

func (s *internServiceImpl) GetByID(ctx context.Context, id models.InternID) (*models.Intern, error) {
	return s.internRepo.GetByID(ctx, id)
}

func (s *internServiceImpl) GetByEncadreur(ctx context.Context, encadreurID models.EncadreurID) ([]*models.Intern, error) {
	return s.internRepo.GetByEncadreurID(ctx, encadreurID)
}

func (s *internServiceImpl) GetDetails(ctx context.Context, id models.InternID) (*models.InternDetails, error) {
	return s.views.GetInternDetails(ctx, id)
}

func (s *internServiceImpl) ListDetails(ctx context.Context) ([]*models.InternDetails, error) {
	return s.views.ListInternDetails(ctx)
}

func (s *internServiceImpl) Update(ctx context.Context, intern *models.Intern) error {
	if intern.EndDate.Before(intern.StartDate) {
		return fmt.Errorf("%w: end date before start date", apperrors.ErrValidationFailed)
	}
	return s.internRepo.Update(ctx, intern)
}

// AssignEncadreur assigns or reassigns an intern to an encadreur, identified
// by the profile id. Full encadreurs are refused; reassignment to the current
// encadreur is accepted and changes nothing.
func (s *internServiceImpl) AssignEncadreur(ctx context.Context, actorID models.UserID, internID models.InternID, encadreurID models.EncadreurID) error {
	intern, err := s.internRepo.GetByID(ctx, internID)
	if err != nil {
		return err
	}

	if intern.EncadreurID != nil && *intern.EncadreurID == encadreurID {
		return nil
	}

	if err := s.checkCapacity(ctx, encadreurID); err != nil {
		return err
	}

	if err := s.internRepo.SetEncadreur(ctx, internID, &encadreurID); err != nil {
		return err
	}

	s.recordActivity(ctx, actorID, models.ActionAssign, internID,
		fmt.Sprintf("intern assigned to encadreur %d", encadreurID))
	s.notifyAssignment(ctx, intern.UserID, internID, "You have been assigned a new supervisor")
	return nil
}

// UnassignEncadreur detaches an intern from its encadreur.
func (s *internServiceImpl) UnassignEncadreur(ctx context.Context, actorID models.UserID, internID models.InternID) error {
	intern, err := s.internRepo.GetByID(ctx, internID)
	if err != nil {
		return err
	}
	if intern.EncadreurID == nil {
		return nil
	}

	if err := s.internRepo.SetEncadreur(ctx, internID, nil); err != nil {
		return err
	}

	s.recordActivity(ctx, actorID, models.ActionUnassign, internID, "intern detached from encadreur")
	return nil
}

func (s *internServiceImpl) AssignProject(ctx context.Context, internID models.InternID, projectID models.ProjectID) error {
	return s.internRepo.SetProject(ctx, internID, &projectID)
}

func (s *internServiceImpl) Delete(ctx context.Context, id models.InternID) error {
	return s.internRepo.Delete(ctx, id)
}

// recordActivity appends an audit entry. Audit failures are logged, not
// propagated: the primary write already committed.
func (s *internServiceImpl) recordActivity(ctx context.Context, actorID models.UserID, action models.ActionKind, internID models.InternID, description string) {
	entry := &models.ActivityEntry{
		ActorID:     actorID,
		Action:      action,
		EntityType:  string(models.EntityIntern),
		EntityID:    int64(internID),
		Description: description,
	}
	if err := s.activity.Create(ctx, entry); err != nil {
		logger.Error().Err(err).Int64("internID", int64(internID)).Msg("Failed to record activity entry")
	}
}

func (s *internServiceImpl) notifyAssignment(ctx context.Context, userID models.UserID, internID models.InternID, message string) {
	ref := models.InternRef(internID)
	notification := &models.Notification{
		UserID:    userID,
		Type:      models.NotifAssignment,
		Title:     "Supervisor assignment",
		Message:   message,
		Reference: &ref,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		logger.Error().Err(err).Int64("userID", int64(userID)).Msg("Failed to send assignment notification")
	}
}
