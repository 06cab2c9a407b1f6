package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	DepartmentRepository   *DepartmentRepository
	SchoolRepository       *SchoolRepository
	EncadreurRepository    *EncadreurRepository
	InternRepository       *InternRepository
	ProjectRepository      *ProjectRepository
	TaskRepository         *TaskRepository
	EvaluationRepository   *EvaluationRepository
	DocumentRepository     *DocumentRepository
	NotificationRepository *NotificationRepository
	ActivityRepository     *ActivityRepository
	ViewsRepository        *ViewsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		DepartmentRepository:   NewDepartmentRepository(db),
		SchoolRepository:       NewSchoolRepository(db),
		EncadreurRepository:    NewEncadreurRepository(db),
		InternRepository:       NewInternRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		TaskRepository:         NewTaskRepository(db),
		EvaluationRepository:   NewEvaluationRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		ViewsRepository:        NewViewsRepository(db),
	}
}
