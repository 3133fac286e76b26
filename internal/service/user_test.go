package service

import (
	"context"
	"testing"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service/mocks"
	"github.com/shenikar/incident_reporting_system/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserService(t *testing.T) (UserService, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	return NewUserService(repo, logger.Discard()), repo
}

func TestCreateUser_DefaultsRole(t *testing.T) {
	service, repo := newTestUserService(t)
	ctx := context.Background()
	user := &models.User{ID: "abc"}

	repo.EXPECT().Create(ctx, user).Return(nil)

	require.NoError(t, service.CreateUser(ctx, user))
	assert.Equal(t, models.RolePublic, user.Role)
}

func TestCreateUser_AlreadyExists(t *testing.T) {
	service, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).Return(models.ErrAlreadyExists)

	err := service.CreateUser(ctx, &models.User{ID: "abc", Role: models.RoleLawEnforcement})

	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	service, repo := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, "missing").Return(nil, models.ErrNotFound)

	user, err := service.GetUser(ctx, "missing")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateUser_BlocksUser(t *testing.T) {
	service, repo := newTestUserService(t)
	ctx := context.Background()
	blocked := true

	repo.EXPECT().GetByID(ctx, "abc").Return(&models.User{ID: "abc", Role: models.RolePublic}, nil)
	repo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, u *models.User) error {
			assert.True(t, u.IsBlocked)
			assert.Equal(t, models.RolePublic, u.Role)
			return nil
		})

	user, err := service.UpdateUser(ctx, "abc", models.UserPatch{IsBlocked: &blocked})

	require.NoError(t, err)
	assert.True(t, user.IsBlocked)
}

func TestUpdateUser_NotFound(t *testing.T) {
	service, repo := newTestUserService(t)
	ctx := context.Background()
	role := models.RoleLawEnforcement

	repo.EXPECT().GetByID(ctx, "ghost").Return(nil, models.ErrNotFound)

	_, err := service.UpdateUser(ctx, "ghost", models.UserPatch{Role: &role})

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, "not found for update")
}
