package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

type fakeProjectRepo struct {
	projects map[models.ProjectID]*models.Project
	nextID   models.ProjectID
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[models.ProjectID]*models.Project{}, nextID: 1}
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if project.Status == "" {
		project.Status = models.ProjectPlanning
	}
	project.ID = f.nextID
	f.nextID++
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id models.ProjectID) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	copied := *project
	return &copied, nil
}

func (f *fakeProjectRepo) GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Project, error) {
	var out []*models.Project
	for _, project := range f.projects {
		if project.DepartmentID == departmentID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if _, ok := f.projects[project.ID]; !ok {
		return apperrors.ErrProjectNotFound
	}
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id models.ProjectID) error {
	if _, ok := f.projects[id]; !ok {
		return apperrors.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func newProjectFixture(t *testing.T) (ProjectService, *fakeProjectRepo, *internFixture) {
	t.Helper()
	f := newInternFixture(t, 2)
	repo := newFakeProjectRepo()
	service := NewProjectService(repo, f.departments, f.encadreurs)
	return service, repo, f
}

func (f *internFixture) newProject() *models.Project {
	return &models.Project{
		DepartmentID: f.department.ID,
		Name:         "Intranet revamp",
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(0, 3, 0),
	}
}

func TestCreateProjectValidatesDepartment(t *testing.T) {
	ctx := context.Background()
	service, _, f := newProjectFixture(t)

	project := f.newProject()
	project.DepartmentID = 999
	err := service.Create(ctx, project)
	require.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestCreateProjectValidatesEncadreur(t *testing.T) {
	ctx := context.Background()
	service, _, f := newProjectFixture(t)

	missing := models.EncadreurID(999)
	project := f.newProject()
	project.EncadreurID = &missing
	err := service.Create(ctx, project)
	require.ErrorIs(t, err, apperrors.ErrEncadreurNotFound)
}

func TestUpdateProgressDrivesStatus(t *testing.T) {
	ctx := context.Background()
	service, repo, f := newProjectFixture(t)

	project := f.newProject()
	require.NoError(t, service.Create(ctx, project))
	assert.Equal(t, models.ProjectPlanning, project.Status)

	require.NoError(t, service.UpdateProgress(ctx, project.ID, 40))
	stored, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, stored.ProgressPercentage)
	assert.Equal(t, models.ProjectInProgress, stored.Status)

	require.NoError(t, service.UpdateProgress(ctx, project.ID, 100))
	stored, err = repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectCompleted, stored.Status)
}

func TestUpdateProgressRejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	service, _, f := newProjectFixture(t)

	project := f.newProject()
	require.NoError(t, service.Create(ctx, project))

	require.ErrorIs(t, service.UpdateProgress(ctx, project.ID, -1), apperrors.ErrProgressOutOfRange)
	require.ErrorIs(t, service.UpdateProgress(ctx, project.ID, 101), apperrors.ErrProgressOutOfRange)
}
