package services

import (
	"context"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
)

// Hand-written fakes backed by maps. They keep the same error contract as the
// real repositories so the services under test cannot tell the difference.

type fakeUserRepo struct {
	users  map[models.UserID]*models.User
	nextID models.UserID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[models.UserID]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.AccountStatus = models.AccountPending
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetAll(ctx context.Context, role *models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		if role == nil || user.Role == *role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetPasswordAndActivate(ctx context.Context, id models.UserID, hashedPassword string) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if user.AccountStatus != models.AccountPending {
		return apperrors.ErrAccountNotPending
	}
	user.Password = &hashedPassword
	user.AccountStatus = models.AccountActive
	return nil
}

func (f *fakeUserRepo) UpdateAccountStatus(ctx context.Context, id models.UserID, status models.AccountStatus) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.AccountStatus = status
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id models.UserID) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeDepartmentRepo struct {
	departments map[models.DepartmentID]*models.Department
	nextID      models.DepartmentID
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[models.DepartmentID]*models.Department{}, nextID: 1}
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	department.ID = f.nextID
	f.nextID++
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id models.DepartmentID) (*models.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

func (f *fakeDepartmentRepo) GetAll(ctx context.Context) ([]*models.Department, error) {
	var out []*models.Department
	for _, department := range f.departments {
		out = append(out, department)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, department *models.Department) error {
	if _, ok := f.departments[department.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentRepo) SetActive(ctx context.Context, id models.DepartmentID, active bool) error {
	department, ok := f.departments[id]
	if !ok {
		return apperrors.ErrDepartmentNotFound
	}
	department.IsActive = active
	return nil
}

func (f *fakeDepartmentRepo) Delete(ctx context.Context, id models.DepartmentID) error {
	if _, ok := f.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

type fakeSchoolRepo struct {
	schools map[models.SchoolID]*models.School
	nextID  models.SchoolID
}

func newFakeSchoolRepo() *fakeSchoolRepo {
	return &fakeSchoolRepo{schools: map[models.SchoolID]*models.School{}, nextID: 1}
}

func (f *fakeSchoolRepo) GetByID(ctx context.Context, id models.SchoolID) (*models.School, error) {
	school, ok := f.schools[id]
	if !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	return school, nil
}

func (f *fakeSchoolRepo) add(school *models.School) *models.School {
	school.ID = f.nextID
	f.nextID++
	f.schools[school.ID] = school
	return school
}

// fakeEncadreurRepo maintains the counter invariant the way the real
// repository does, minus the locking.
type fakeEncadreurRepo struct {
	encadreurs map[models.EncadreurID]*models.Encadreur
	nextID     models.EncadreurID
}

func newFakeEncadreurRepo() *fakeEncadreurRepo {
	return &fakeEncadreurRepo{encadreurs: map[models.EncadreurID]*models.Encadreur{}, nextID: 1}
}

func (f *fakeEncadreurRepo) Create(ctx context.Context, encadreur *models.Encadreur) error {
	encadreur.ID = f.nextID
	f.nextID++
	encadreur.CurrentInternsCount = 0
	encadreur.IsAvailable = encadreur.MaxInterns > 0
	f.encadreurs[encadreur.ID] = encadreur
	return nil
}

func (f *fakeEncadreurRepo) GetByID(ctx context.Context, id models.EncadreurID) (*models.Encadreur, error) {
	encadreur, ok := f.encadreurs[id]
	if !ok {
		return nil, apperrors.ErrEncadreurNotFound
	}
	return encadreur, nil
}

func (f *fakeEncadreurRepo) GetByUserID(ctx context.Context, userID models.UserID) (*models.Encadreur, error) {
	for _, encadreur := range f.encadreurs {
		if encadreur.UserID == userID {
			return encadreur, nil
		}
	}
	return nil, apperrors.ErrEncadreurNotFound
}

func (f *fakeEncadreurRepo) GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Encadreur, error) {
	var out []*models.Encadreur
	for _, encadreur := range f.encadreurs {
		if encadreur.DepartmentID == departmentID {
			out = append(out, encadreur)
		}
	}
	return out, nil
}

func (f *fakeEncadreurRepo) Update(ctx context.Context, encadreur *models.Encadreur) error {
	current, ok := f.encadreurs[encadreur.ID]
	if !ok {
		return apperrors.ErrEncadreurNotFound
	}
	encadreur.CurrentInternsCount = current.CurrentInternsCount
	encadreur.IsAvailable = current.CurrentInternsCount < encadreur.MaxInterns
	f.encadreurs[encadreur.ID] = encadreur
	return nil
}

func (f *fakeEncadreurRepo) Delete(ctx context.Context, id models.EncadreurID) error {
	if _, ok := f.encadreurs[id]; !ok {
		return apperrors.ErrEncadreurNotFound
	}
	delete(f.encadreurs, id)
	return nil
}

func (f *fakeEncadreurRepo) adjust(id models.EncadreurID, delta int) {
	encadreur, ok := f.encadreurs[id]
	if !ok {
		return
	}
	encadreur.CurrentInternsCount += delta
	if encadreur.CurrentInternsCount < 0 {
		encadreur.CurrentInternsCount = 0
	}
	encadreur.IsAvailable = encadreur.CurrentInternsCount < encadreur.MaxInterns
}

// fakeInternRepo mirrors the transactional reassignment of the real
// repository: counters move together with the pointer change.
type fakeInternRepo struct {
	interns    map[models.InternID]*models.Intern
	nextID     models.InternID
	encadreurs *fakeEncadreurRepo

	setEncadreurCalls int
}

func newFakeInternRepo(encadreurs *fakeEncadreurRepo) *fakeInternRepo {
	return &fakeInternRepo{
		interns:    map[models.InternID]*models.Intern{},
		nextID:     1,
		encadreurs: encadreurs,
	}
}

func (f *fakeInternRepo) Create(ctx context.Context, intern *models.Intern) error {
	intern.ID = f.nextID
	f.nextID++
	f.interns[intern.ID] = intern
	if intern.EncadreurID != nil {
		f.encadreurs.adjust(*intern.EncadreurID, 1)
	}
	return nil
}

func (f *fakeInternRepo) GetByID(ctx context.Context, id models.InternID) (*models.Intern, error) {
	intern, ok := f.interns[id]
	if !ok {
		return nil, apperrors.ErrInternNotFound
	}
	return intern, nil
}

func (f *fakeInternRepo) GetByUserID(ctx context.Context, userID models.UserID) (*models.Intern, error) {
	for _, intern := range f.interns {
		if intern.UserID == userID {
			return intern, nil
		}
	}
	return nil, apperrors.ErrInternNotFound
}

func (f *fakeInternRepo) GetByEncadreurID(ctx context.Context, encadreurID models.EncadreurID) ([]*models.Intern, error) {
	var out []*models.Intern
	for _, intern := range f.interns {
		if intern.EncadreurID != nil && *intern.EncadreurID == encadreurID {
			out = append(out, intern)
		}
	}
	return out, nil
}

func (f *fakeInternRepo) GetByDepartmentID(ctx context.Context, departmentID models.DepartmentID) ([]*models.Intern, error) {
	var out []*models.Intern
	for _, intern := range f.interns {
		if intern.DepartmentID == departmentID {
			out = append(out, intern)
		}
	}
	return out, nil
}

func (f *fakeInternRepo) Update(ctx context.Context, intern *models.Intern) error {
	current, ok := f.interns[intern.ID]
	if !ok {
		return apperrors.ErrInternNotFound
	}
	intern.EncadreurID = current.EncadreurID
	f.interns[intern.ID] = intern
	return nil
}

func (f *fakeInternRepo) SetEncadreur(ctx context.Context, id models.InternID, encadreurID *models.EncadreurID) error {
	f.setEncadreurCalls++
	intern, ok := f.interns[id]
	if !ok {
		return apperrors.ErrInternNotFound
	}
	dec, inc := models.AssignmentDelta(intern.EncadreurID, encadreurID)
	if dec != nil {
		f.encadreurs.adjust(*dec, -1)
	}
	if inc != nil {
		f.encadreurs.adjust(*inc, 1)
	}
	intern.EncadreurID = encadreurID
	return nil
}

func (f *fakeInternRepo) SetProject(ctx context.Context, id models.InternID, projectID *models.ProjectID) error {
	intern, ok := f.interns[id]
	if !ok {
		return apperrors.ErrInternNotFound
	}
	intern.ProjectID = projectID
	return nil
}

func (f *fakeInternRepo) SetEvaluationScore(ctx context.Context, id models.InternID, score float64) error {
	if err := models.ValidateScore("evaluation score", score); err != nil {
		return err
	}
	intern, ok := f.interns[id]
	if !ok {
		return apperrors.ErrInternNotFound
	}
	intern.EvaluationScore = &score
	return nil
}

func (f *fakeInternRepo) Delete(ctx context.Context, id models.InternID) error {
	intern, ok := f.interns[id]
	if !ok {
		return apperrors.ErrInternNotFound
	}
	if intern.EncadreurID != nil {
		f.encadreurs.adjust(*intern.EncadreurID, -1)
	}
	delete(f.interns, id)
	return nil
}

type fakeNotificationWriter struct {
	sent []*models.Notification
}

func (f *fakeNotificationWriter) Create(ctx context.Context, notification *models.Notification) error {
	f.sent = append(f.sent, notification)
	return nil
}

type fakeActivityWriter struct {
	entries []*models.ActivityEntry
}

func (f *fakeActivityWriter) Create(ctx context.Context, entry *models.ActivityEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeInternViews struct{}

func (f *fakeInternViews) GetInternDetails(ctx context.Context, id models.InternID) (*models.InternDetails, error) {
	return nil, apperrors.ErrInternNotFound
}

func (f *fakeInternViews) ListInternDetails(ctx context.Context) ([]*models.InternDetails, error) {
	return nil, nil
}

type fakeEvaluationRepo struct {
	evaluations map[models.EvaluationID]*models.Evaluation
	nextID      models.EvaluationID
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evaluations: map[models.EvaluationID]*models.Evaluation{}, nextID: 1}
}

func (f *fakeEvaluationRepo) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if err := evaluation.DeriveOverallScore(); err != nil {
		return err
	}
	evaluation.ID = f.nextID
	f.nextID++
	f.evaluations[evaluation.ID] = evaluation
	return nil
}

func (f *fakeEvaluationRepo) GetByID(ctx context.Context, id models.EvaluationID) (*models.Evaluation, error) {
	evaluation, ok := f.evaluations[id]
	if !ok {
		return nil, apperrors.ErrEvaluationNotFound
	}
	return evaluation, nil
}

func (f *fakeEvaluationRepo) GetByInternID(ctx context.Context, internID models.InternID) ([]*models.Evaluation, error) {
	var out []*models.Evaluation
	// newest first, matching the real repository's ordering
	for id := f.nextID - 1; id >= 1; id-- {
		evaluation, ok := f.evaluations[id]
		if ok && evaluation.InternID == internID {
			out = append(out, evaluation)
		}
	}
	return out, nil
}

func (f *fakeEvaluationRepo) Update(ctx context.Context, evaluation *models.Evaluation) error {
	if err := evaluation.DeriveOverallScore(); err != nil {
		return err
	}
	if _, ok := f.evaluations[evaluation.ID]; !ok {
		return apperrors.ErrEvaluationNotFound
	}
	f.evaluations[evaluation.ID] = evaluation
	return nil
}

func (f *fakeEvaluationRepo) Delete(ctx context.Context, id models.EvaluationID) error {
	if _, ok := f.evaluations[id]; !ok {
		return apperrors.ErrEvaluationNotFound
	}
	delete(f.evaluations, id)
	return nil
}
