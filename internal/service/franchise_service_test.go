package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.Equal(t, "unauthorized", de.Message)
}

func TestFranchiseService_ListDetailsOnlyForAdmins(t *testing.T) {
	ctx := context.Background()
	repo := &repositorytest.FranchiseRepository{}
	svc := NewFranchiseService(repo)
	query := domain.ListQuery{Page: 0, Limit: 10, Name: "*"}

	repo.On("GetFranchises", ctx, query, false).Return([]domain.Franchise{{ID: 1, Name: "pizzaPocket"}}, true, nil).Twice()
	repo.On("GetFranchises", ctx, query, true).Return([]domain.Franchise{{ID: 1, Name: "pizzaPocket"}}, false, nil).Once()

	_, more, err := svc.ListFranchises(ctx, nil, query)
	require.NoError(t, err)
	assert.True(t, more)

	_, _, err = svc.ListFranchises(ctx, actor(4, dinerRole()), query)
	require.NoError(t, err)

	_, _, err = svc.ListFranchises(ctx, actor(1, adminRole()), query)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFranchiseService_UserFranchisesSoftDenial(t *testing.T) {
	ctx := context.Background()
	repo := &repositorytest.FranchiseRepository{}
	svc := NewFranchiseService(repo)
	owned := []domain.Franchise{{ID: 2, Name: "mine"}}
	repo.On("GetUserFranchises", ctx, int64(7)).Return(owned, nil)

	got, err := svc.UserFranchises(ctx, actor(8, dinerRole()), 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.Franchise{}, got)
	repo.AssertNotCalled(t, "GetUserFranchises", mock.Anything, mock.Anything)

	got, err = svc.UserFranchises(ctx, actor(7, dinerRole()), 7)
	require.NoError(t, err)
	assert.Equal(t, owned, got)

	got, err = svc.UserFranchises(ctx, actor(1, adminRole()), 7)
	require.NoError(t, err)
	assert.Equal(t, owned, got)
}

func TestFranchiseService_CreateFranchiseAdminOnly(t *testing.T) {
	ctx := context.Background()
	repo := &repositorytest.FranchiseRepository{}
	svc := NewFranchiseService(repo)
	input := domain.Franchise{Name: "pizzaPocket", Admins: []domain.FranchiseAdmin{{Email: "f@jwt.com"}}}
	repo.On("CreateFranchise", ctx, input).Return(&domain.Franchise{ID: 1, Name: "pizzaPocket"}, nil)

	_, err := svc.CreateFranchise(ctx, actor(3, dinerRole()), input)
	assertForbidden(t, err)

	created, err := svc.CreateFranchise(ctx, actor(1, adminRole()), input)
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)
}

func TestFranchiseService_StoreRules(t *testing.T) {
	ctx := context.Background()
	franchise := &domain.Franchise{ID: 5, Name: "pizzaPocket", Admins: []domain.FranchiseAdmin{{ID: 9, Email: "f@jwt.com"}}}
	store := domain.Store{Name: "SLC"}

	tests := []struct {
		name      string
		admin     bool
		userID    int64
		franchise *domain.Franchise
		allowed   bool
	}{
		{name: "franchise admin", userID: 9, franchise: franchise, allowed: true},
		{name: "global admin", userID: 1, franchise: franchise, allowed: true, admin: true},
		{name: "stranger", userID: 4, franchise: franchise},
		{name: "missing franchise", userID: 1, admin: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &repositorytest.FranchiseRepository{}
			svc := NewFranchiseService(repo)
			repo.On("GetFranchise", ctx, int64(5)).Return(tc.franchise, nil)
			repo.On("CreateStore", ctx, int64(5), store).Return(&domain.Store{ID: 11, FranchiseID: 5, Name: "SLC"}, nil).Maybe()
			repo.On("DeleteStore", ctx, int64(5), int64(11)).Return(nil).Maybe()

			roles := []domain.RoleAssignment{dinerRole()}
			if tc.admin {
				roles = append(roles, adminRole())
			}
			caller := actor(tc.userID, roles...)

			created, createErr := svc.CreateStore(ctx, caller, 5, store)
			deleteErr := svc.DeleteStore(ctx, caller, 5, 11)

			if !tc.allowed {
				assertForbidden(t, createErr)
				assertForbidden(t, deleteErr)
				repo.AssertNotCalled(t, "CreateStore", mock.Anything, mock.Anything, mock.Anything)
				repo.AssertNotCalled(t, "DeleteStore", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, createErr)
			require.NoError(t, deleteErr)
			assert.EqualValues(t, 11, created.ID)
		})
	}
}
