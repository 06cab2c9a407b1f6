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

type internFixture struct {
	users         *fakeUserRepo
	departments   *fakeDepartmentRepo
	schools       *fakeSchoolRepo
	encadreurs    *fakeEncadreurRepo
	interns       *fakeInternRepo
	notifications *fakeNotificationWriter
	activity      *fakeActivityWriter
	service       InternService

	admin        *models.User
	department   *models.Department
	school       *models.School
	supervisorID models.EncadreurID
}

func newInternFixture(t *testing.T, maxInterns int) *internFixture {
	t.Helper()
	ctx := context.Background()

	f := &internFixture{
		users:         newFakeUserRepo(),
		departments:   newFakeDepartmentRepo(),
		schools:       newFakeSchoolRepo(),
		encadreurs:    newFakeEncadreurRepo(),
		notifications: &fakeNotificationWriter{},
		activity:      &fakeActivityWriter{},
	}
	f.interns = newFakeInternRepo(f.encadreurs)
	f.service = NewInternService(
		f.interns, f.encadreurs, f.users, f.schools, f.departments,
		f.notifications, f.activity, &fakeInternViews{},
	)

	f.admin = &models.User{Email: "admin@test.local", FirstName: "Ad", LastName: "Min", Role: models.RoleAdmin}
	require.NoError(t, f.users.Create(ctx, f.admin))

	f.department = &models.Department{Name: "Informatique", Code: "INFO", IsActive: true}
	require.NoError(t, f.departments.Create(ctx, f.department))

	f.school = f.schools.add(&models.School{Name: "ESP", City: "Antananarivo"})

	supervisorUser := &models.User{Email: "sup@test.local", FirstName: "Su", LastName: "Per", Role: models.RoleEncadreur}
	require.NoError(t, f.users.Create(ctx, supervisorUser))
	supervisor := &models.Encadreur{
		UserID:       supervisorUser.ID,
		DepartmentID: f.department.ID,
		MaxInterns:   maxInterns,
	}
	require.NoError(t, f.encadreurs.Create(ctx, supervisor))
	f.supervisorID = supervisor.ID

	return f
}

func (f *internFixture) addIntern(t *testing.T, email string) *models.Intern {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: email, FirstName: "In", LastName: "Tern", Role: models.RoleStagiaire}
	require.NoError(t, f.users.Create(ctx, user))

	intern := &models.Intern{
		UserID:        user.ID,
		SchoolID:      f.school.ID,
		DepartmentID:  f.department.ID,
		AcademicLevel: models.LevelMaster1,
		StartDate:     time.Now(),
		EndDate:       time.Now().AddDate(0, 6, 0),
		Status:        models.InternActive,
	}
	require.NoError(t, f.service.CreateIntern(ctx, f.admin.ID, intern))
	return intern
}

func TestAssignEncadreurRefusesWhenFull(t *testing.T) {
	ctx := context.Background()
	f := newInternFixture(t, 2)

	first := f.addIntern(t, "i1@test.local")
	second := f.addIntern(t, "i2@test.local")
	third := f.addIntern(t, "i3@test.local")

	require.NoError(t, f.service.AssignEncadreur(ctx, f.admin.ID, first.ID, f.supervisorID))
	require.NoError(t, f.service.AssignEncadreur(ctx, f.admin.ID, second.ID, f.supervisorID))

	supervisor, err := f.encadreurs.GetByID(ctx, f.supervisorID)
	require.NoError(t, err)
	assert.Equal(t, 2, supervisor.CurrentInternsCount)
	assert.False(t, supervisor.IsAvailable)

	err = f.service.AssignEncadreur(ctx, f.admin.ID, third.ID, f.supervisorID)
	require.ErrorIs(t, err, apperrors.ErrEncadreurAtCapacity)

	// counter unchanged, third intern untouched
	supervisor, err = f.encadreurs.GetByID(ctx, f.supervisorID)
	require.NoError(t, err)
	assert.Equal(t, 2, supervisor.CurrentInternsCount)
	got, err := f.interns.GetByID(ctx, third.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EncadreurID)
}

func TestAssignEncadreurSameEncadreurIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newInternFixture(t, 3)

	intern := f.addIntern(t, "i1@test.local")
	require.NoError(t, f.service.AssignEncadreur(ctx, f.admin.ID, intern.ID, f.supervisorID))

	callsBefore := f.interns.setEncadreurCalls
	require.NoError(t, f.service.AssignEncadreur(ctx, f.admin.ID, intern.ID, f.supervisorID))
	assert.Equal(t, callsBefore, f.interns.setEncadreurCalls)

	supervisor, err := f.encadreurs.GetByID(ctx, f.supervisorID)
	require.NoError(t, err)
	assert.Equal(t, 1, supervisor.CurrentInternsCount)
}

func TestAssignEncadreurNotifiesAndRecordsActivity(t *testing.T) {
	ctx := context.Background()
	f := newInternFixture(t, 3)

	intern := f.addIntern(t, "i1@test.local")
	notificationsBefore := len(f.notifications.sent)
	activityBefore := len(f.activity.entries)

	require.NoError(t, f.service.AssignEncadreur(ctx, f.admin.ID, intern.ID, f.supervisorID))

	require.Len(t, f.notifications.sent, notificationsBefore+1)
	notification := f.notifications.sent[len(f.notifications.sent)-1]
	assert.Equal(t, intern.UserID, notification.UserID)
	assert.Equal(t, models.NotifAssignment, notification.Type)
	require.NotNil(t, notification.Reference)
	assert.Equal(t, models.EntityIntern, notification.Reference.Kind())
	assert.Equal(t, int64(intern.ID), notification.Reference.RawID())

	require.Len(t, f.activity.entries, activityBefore+1)
	entry := f.activity.entries[len(f.activity.entries)-1]
	assert.Equal(t, models.ActionAssign, entry.Action)
	assert.Equal(t, f.admin.ID, entry.ActorID)
}

func TestUnassignEncadreurReleasesSlot(t *testing.T) {
	ctx := context.Background()
	f := newInternFixture(t, 1)

	intern := f.addIntern(t, "i1@test.local")
	require.NoError(t, f.service.AssignEncadreur(ctx, f.admin.ID, intern.ID, f.supervisorID))

	supervisor, err := f.encadreurs.GetByID(ctx, f.supervisorID)
	require.NoError(t, err)
	assert.False(t, supervisor.IsAvailable)

	require.NoError(t, f.service.UnassignEncadreur(ctx, f.admin.ID, intern.ID))

	supervisor, err = f.encadreurs.GetByID(ctx, f.supervisorID)
	require.NoError(t, err)
	assert.Equal(t, 0, supervisor.CurrentInternsCount)
	assert.True(t, supervisor.IsAvailable)

	got, err := f.interns.GetByID(ctx, intern.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EncadreurID)
}

func TestCreateInternValidatesReferences(t *testing.T) {
	ctx := context.Background()
	f := newInternFixture(t, 2)

	admin := f.admin

	t.Run("wrong role", func(t *testing.T) {
		intern := &models.Intern{
			UserID:       admin.ID, // ADMIN, not STAGIAIRE
			SchoolID:     f.school.ID,
			DepartmentID: f.department.ID,
			StartDate:    time.Now(),
			EndDate:      time.Now().AddDate(0, 6, 0),
		}
		err := f.service.CreateIntern(ctx, admin.ID, intern)
		require.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	})

	t.Run("inactive department", func(t *testing.T) {
		require.NoError(t, f.departments.SetActive(ctx, f.department.ID, false))
		defer func() {
			require.NoError(t, f.departments.SetActive(ctx, f.department.ID, true))
		}()

		user := &models.User{Email: "x@test.local", FirstName: "X", LastName: "Y", Role: models.RoleStagiaire}
		require.NoError(t, f.users.Create(ctx, user))
		intern := &models.Intern{
			UserID:       user.ID,
			SchoolID:     f.school.ID,
			DepartmentID: f.department.ID,
			StartDate:    time.Now(),
			EndDate:      time.Now().AddDate(0, 6, 0),
		}
		err := f.service.CreateIntern(ctx, admin.ID, intern)
		require.ErrorIs(t, err, apperrors.ErrDepartmentInactive)
	})

	t.Run("end before start", func(t *testing.T) {
		user := &models.User{Email: "y@test.local", FirstName: "X", LastName: "Y", Role: models.RoleStagiaire}
		require.NoError(t, f.users.Create(ctx, user))
		intern := &models.Intern{
			UserID:       user.ID,
			SchoolID:     f.school.ID,
			DepartmentID: f.department.ID,
			StartDate:    time.Now(),
			EndDate:      time.Now().AddDate(0, -1, 0),
		}
		err := f.service.CreateIntern(ctx, admin.ID, intern)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestCreateInternWithInitialEncadreurCountsIt(t *testing.T) {
	ctx := context.Background()
	f := newInternFixture(t, 1)

	user := &models.User{Email: "i1@test.local", FirstName: "In", LastName: "Tern", Role: models.RoleStagiaire}
	require.NoError(t, f.users.Create(ctx, user))

	supervisorID := f.supervisorID
	intern := &models.Intern{
		UserID:       user.ID,
		SchoolID:     f.school.ID,
		DepartmentID: f.department.ID,
		EncadreurID:  &supervisorID,
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(0, 6, 0),
	}
	require.NoError(t, f.service.CreateIntern(ctx, f.admin.ID, intern))

	supervisor, err := f.encadreurs.GetByID(ctx, supervisorID)
	require.NoError(t, err)
	assert.Equal(t, 1, supervisor.CurrentInternsCount)
	assert.False(t, supervisor.IsAvailable)
}
