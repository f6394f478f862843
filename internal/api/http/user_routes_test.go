package http

import (
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/domain"
)

func TestUpdateUserSelfOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	patch := domain.UserPatch{Name: "renamed", Email: "renamed@jwt.com"}
	updated := &domain.User{ID: 1, Name: "renamed", Email: "renamed@jwt.com", Roles: []domain.RoleAssignment{{Role: domain.RoleDiner}}}
	env.users.On("UpdateUser", mock.Anything, int64(1), patch).Return(updated, nil)

	self := env.login(t, 1)
	resp := env.do(t, nethttp.MethodPut, "/api/user/1", self, map[string]string{"name": "renamed", "email": "renamed@jwt.com"})
	require.Equal(t, nethttp.StatusOK, resp.status, string(resp.raw))
	body := resp.object(t)
	assert.Equal(t, "renamed", body["user"].(map[string]any)["name"])
	fresh, _ := body["token"].(string)
	require.NotEmpty(t, fresh)
	assert.Equal(t, nethttp.StatusOK, env.do(t, nethttp.MethodGet, "/api/user/me", fresh, nil).status)

	other := env.do(t, nethttp.MethodPut, "/api/user/2", self, map[string]string{"name": "renamed"})
	assert.Equal(t, nethttp.StatusForbidden, other.status)
	assert.Equal(t, "unauthorized", other.object(t)["message"])

	admin := env.login(t, 2, adminRole())
	resp = env.do(t, nethttp.MethodPut, "/api/user/1", admin, map[string]string{"name": "renamed", "email": "renamed@jwt.com"})
	assert.Equal(t, nethttp.StatusOK, resp.status)
	env.users.AssertNumberOfCalls(t, "UpdateUser", 2)
}

func TestUpdateUserRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, 1)

	resp := env.do(t, nethttp.MethodPut, "/api/user/abc", token, map[string]string{"name": "x"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.status)
	assert.Equal(t, "invalid userId", resp.object(t)["message"])

	resp = env.do(t, nethttp.MethodPut, "/api/user/1", token, map[string]string{"email": "not-an-email"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.status)
	assert.Contains(t, resp.object(t), "fields")
}

func TestMeReturnsIdentity(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, 7, adminRole())

	resp := env.do(t, nethttp.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.status)

	var identity domain.Identity
	resp.decode(t, &identity)
	assert.EqualValues(t, 7, identity.ID)
	assert.Equal(t, []domain.RoleAssignment{adminRole()}, identity.Roles)
}

func TestDeleteUserNotImplemented(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, nethttp.MethodDelete, "/api/user/1", env.login(t, 1), nil)

	assert.Equal(t, nethttp.StatusOK, resp.status)
	assert.Equal(t, "not implemented", resp.object(t)["message"])
}

func TestListUsersQueryDefaults(t *testing.T) {
	env := newTestEnv(t)
	listed := []domain.User{{ID: 1, Name: "常用名字", Email: "a@jwt.com", Roles: []domain.RoleAssignment{adminRole()}}}
	env.users.On("ListUsers", mock.Anything, domain.ListQuery{Page: 1, Limit: 10, Name: "*"}).Return(listed, false, nil)
	env.users.On("ListUsers", mock.Anything, domain.ListQuery{Page: 2, Limit: 5, Name: "*"}).Return([]domain.User{}, true, nil)
	env.users.On("ListUsers", mock.Anything, domain.ListQuery{Page: 1, Limit: 10, Name: "pizza"}).Return([]domain.User{}, false, nil)
	token := env.login(t, 3)

	resp := env.do(t, nethttp.MethodGet, "/api/user", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.status)
	var page struct {
		Users []domain.User `json:"users"`
		More  bool          `json:"more"`
	}
	resp.decode(t, &page)
	assert.Equal(t, listed, page.Users)
	assert.False(t, page.More)

	resp = env.do(t, nethttp.MethodGet, "/api/user?page=2&limit=5", token, nil)
	assert.Equal(t, true, resp.object(t)["more"])

	resp = env.do(t, nethttp.MethodGet, "/api/user?name=pizza", token, nil)
	assert.Equal(t, nethttp.StatusOK, resp.status)
	env.users.AssertExpectations(t)
}

func TestRepositoryFailureIs500WithMessage(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("ListUsers", mock.Anything, mock.Anything).Return(nil, false, errDatabaseDown)

	resp := env.do(t, nethttp.MethodGet, "/api/user", env.login(t, 1), nil)

	assert.Equal(t, nethttp.StatusInternalServerError, resp.status)
	assert.Equal(t, "database down", resp.object(t)["message"])
}
