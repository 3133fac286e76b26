package v1

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetUser(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.users.EXPECT().GetUser(gomock.Any(), "officer-1").
		Return(&models.User{ID: "officer-1", Role: models.RoleLawEnforcement}, nil)

	w := makeRequest(router, http.MethodGet, "/users/officer-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"law_enforcement"`)
	assert.Contains(t, w.Body.String(), `"isBlocked":false`)
}

func TestGetUser_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.users.EXPECT().GetUser(gomock.Any(), "ghost").Return(nil, models.ErrNotFound)

	w := makeRequest(router, http.MethodGet, "/users/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestCreateUser(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, u *models.User) error {
			assert.Equal(t, "new-user", u.ID)
			assert.True(t, u.IsBlocked)
			u.Role = models.RolePublic
			return nil
		})

	w := makeRequest(router, http.MethodPost, "/users", strings.NewReader(`{"id":"new-user","is_blocked":true}`), withAPIKey())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"public"`)
}

func TestCreateUser_Conflict(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.ErrAlreadyExists)

	w := makeRequest(router, http.MethodPost, "/users", strings.NewReader(`{"id":"dup"}`), withAPIKey())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, "/users", strings.NewReader(`{"id":"x","role":"admin"}`), withAPIKey())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_RequiresAPIKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, "/users", strings.NewReader(`{"id":"x"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateUser_Block(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.users.EXPECT().
		UpdateUser(gomock.Any(), "u1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
			require.NotNil(t, patch.IsBlocked)
			assert.True(t, *patch.IsBlocked)
			assert.Nil(t, patch.Role)
			return &models.User{ID: id, Role: models.RolePublic, IsBlocked: true}, nil
		})

	w := makeRequest(router, http.MethodPut, "/users/u1", strings.NewReader(`{"isBlocked":true}`), withAPIKey())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isBlocked":true`)
}
