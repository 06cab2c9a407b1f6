package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/willy903/backintern/internal/app/models"
	appRepos "github.com/willy903/backintern/internal/app/repositories"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/auth"
)

// CreateDefaultData inserts the reference rows and the bootstrap admin account
// a fresh installation needs. Rows that already exist are left alone, so the
// function is safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	schoolRepo := appRepos.NewSchoolRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (departments/schools/admin)...")
	var finalErr error

	departments := []*appModels.Department{
		{Name: "Informatique", Code: "INFO", IsActive: true},
		{Name: "Ressources Humaines", Code: "RH", IsActive: true},
		{Name: "Finance", Code: "FIN", IsActive: true},
		{Name: "Marketing", Code: "MKT", IsActive: true},
	}
	for _, department := range departments {
		if err := departmentRepo.Create(ctx, department); err != nil &&
			!errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", department.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	schools := []*appModels.School{
		{Name: "Université d'Antananarivo", City: "Antananarivo"},
		{Name: "École Supérieure Polytechnique", City: "Antananarivo"},
	}
	for _, school := range schools {
		if err := schoolRepo.Create(ctx, school); err != nil &&
			!errors.Is(err, apperrors.ErrSchoolAlreadyExists) {
			lgr.Error().Err(err).Str("name", school.Name).Msg("Error creating default school")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createAdminUser(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// createAdminUser creates an already-active ADMIN account with a known default
// password. The password must be changed after first login.
func createAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	admin := &appModels.User{
		Email:     "admin@backintern.local",
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleAdmin,
	}

	err := userRepo.Create(ctx, admin)
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return nil
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	hashed, err := auth.HashPassword("ChangeMe123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}
	if err := userRepo.SetPasswordAndActivate(ctx, admin.ID, hashed); err != nil {
		lgr.Error().Err(err).Msg("Error activating default admin user")
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
