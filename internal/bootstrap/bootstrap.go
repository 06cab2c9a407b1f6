package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appMigrations "github.com/willy903/backintern/internal/app/migrations"
	appRepos "github.com/willy903/backintern/internal/app/repositories"
	appServices "github.com/willy903/backintern/internal/app/services"
	"github.com/willy903/backintern/internal/config"
	"github.com/willy903/backintern/internal/db"
	"github.com/willy903/backintern/internal/pkg/filestorage"
	"github.com/willy903/backintern/internal/pkg/logger"
	"github.com/willy903/backintern/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService         appServices.UserService
	DepartmentService   appServices.DepartmentService
	SchoolService       appServices.SchoolService
	EncadreurService    appServices.EncadreurService
	InternService       appServices.InternService
	ProjectService      appServices.ProjectService
	TaskService         appServices.TaskService
	EvaluationService   appServices.EvaluationService
	DocumentService     appServices.DocumentService
	NotificationService appServices.NotificationService
	ActivityService     appServices.ActivityService
	StatsService        appServices.StatsService
	Repos               *appRepos.Repositories
	FileStorage         *filestorage.LocalStorage
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// optionally seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := cfg.Migrations.Dir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories and services.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.SchoolService = appServices.NewSchoolService(deps.Repos.SchoolRepository)
	deps.EncadreurService = appServices.NewEncadreurService(
		deps.Repos.EncadreurRepository,
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.ViewsRepository,
	)
	deps.InternService = appServices.NewInternService(
		deps.Repos.InternRepository,
		deps.Repos.EncadreurRepository,
		deps.Repos.UserRepository,
		deps.Repos.SchoolRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.ActivityRepository,
		deps.Repos.ViewsRepository,
	)
	deps.ProjectService = appServices.NewProjectService(
		deps.Repos.ProjectRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.EncadreurRepository,
	)
	deps.TaskService = appServices.NewTaskService(
		deps.Repos.TaskRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
	)
	deps.EvaluationService = appServices.NewEvaluationService(
		deps.Repos.EvaluationRepository,
		deps.Repos.InternRepository,
		deps.Repos.EncadreurRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.ActivityRepository,
	)
	deps.DocumentService = appServices.NewDocumentService(
		deps.Repos.DocumentRepository,
		deps.FileStorage,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository)
	deps.ActivityService = appServices.NewActivityService(deps.Repos.ActivityRepository)
	deps.StatsService = appServices.NewStatsService(deps.Repos.ViewsRepository)

	lgr.Info().Msg("Application dependencies initialized.")
	return deps, nil
}
