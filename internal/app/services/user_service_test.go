package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy903/backintern/internal/app/models"
	"github.com/willy903/backintern/internal/pkg/apperrors"
	"github.com/willy903/backintern/internal/pkg/auth"
)

func TestRegisterNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user := &models.User{
		Email:     "  Jean.Dupont@Example.COM ",
		FirstName: "Jean",
		LastName:  "Dupont",
		Role:      models.RoleStagiaire,
	}
	require.NoError(t, service.Register(ctx, user))
	assert.Equal(t, "jean.dupont@example.com", user.Email)
	assert.Equal(t, models.AccountPending, user.AccountStatus)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(newFakeUserRepo())

	tests := []struct {
		name string
		user models.User
		want error
	}{
		{"missing email", models.User{FirstName: "A", LastName: "B", Role: models.RoleAdmin}, apperrors.ErrValidationFailed},
		{"malformed email", models.User{Email: "nope", FirstName: "A", LastName: "B", Role: models.RoleAdmin}, apperrors.ErrValidationFailed},
		{"missing name", models.User{Email: "a@b.co", Role: models.RoleAdmin}, apperrors.ErrValidationFailed},
		{"unknown role", models.User{Email: "a@b.co", FirstName: "A", LastName: "B", Role: "SUPERUSER"}, apperrors.ErrInvalidEnumValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			err := service.Register(ctx, &user)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(newFakeUserRepo())

	first := &models.User{Email: "a@b.co", FirstName: "A", LastName: "B", Role: models.RoleAdmin}
	require.NoError(t, service.Register(ctx, first))

	second := &models.User{Email: "A@B.CO", FirstName: "C", LastName: "D", Role: models.RoleAdmin}
	err := service.Register(ctx, second)
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestActivateSetsHashedPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user := &models.User{Email: "a@b.co", FirstName: "A", LastName: "B", Role: models.RoleEncadreur}
	require.NoError(t, service.Register(ctx, user))

	require.NoError(t, service.Activate(ctx, user.ID, "s3cret-pass"))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AccountActive, stored.AccountStatus)
	require.NotNil(t, stored.Password)
	assert.NotEqual(t, "s3cret-pass", *stored.Password)
	assert.True(t, auth.CheckPassword(*stored.Password, "s3cret-pass"))
}

func TestActivateRejectsShortPassword(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(newFakeUserRepo())

	err := service.Activate(ctx, 1, "short")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestActivateTwiceFails(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user := &models.User{Email: "a@b.co", FirstName: "A", LastName: "B", Role: models.RoleEncadreur}
	require.NoError(t, service.Register(ctx, user))
	require.NoError(t, service.Activate(ctx, user.ID, "s3cret-pass"))

	err := service.Activate(ctx, user.ID, "other-pass99")
	require.ErrorIs(t, err, apperrors.ErrAccountNotPending)
}
