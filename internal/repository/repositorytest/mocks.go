// Package repositorytest provides testify mocks of the repository interfaces.
package repositorytest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/repository"
)

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.FranchiseRepository = (*FranchiseRepository)(nil)
	_ repository.MenuRepository      = (*MenuRepository)(nil)
	_ repository.OrderRepository     = (*OrderRepository)(nil)
)

// UserRepository mocks repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) AddUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	args := m.Called(ctx, user, password)
	created, _ := args.Get(0).(*domain.User)
	return created, args.Error(1)
}

func (m *UserRepository) GetUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepository) ListUsers(ctx context.Context, query domain.ListQuery) ([]domain.User, bool, error) {
	args := m.Called(ctx, query)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Bool(1), args.Error(2)
}

// FranchiseRepository mocks repository.FranchiseRepository.
type FranchiseRepository struct {
	mock.Mock
}

func (m *FranchiseRepository) GetFranchises(ctx context.Context, query domain.ListQuery, withDetails bool) ([]domain.Franchise, bool, error) {
	args := m.Called(ctx, query, withDetails)
	franchises, _ := args.Get(0).([]domain.Franchise)
	return franchises, args.Bool(1), args.Error(2)
}

func (m *FranchiseRepository) GetUserFranchises(ctx context.Context, userID int64) ([]domain.Franchise, error) {
	args := m.Called(ctx, userID)
	franchises, _ := args.Get(0).([]domain.Franchise)
	return franchises, args.Error(1)
}

func (m *FranchiseRepository) CreateFranchise(ctx context.Context, franchise domain.Franchise) (*domain.Franchise, error) {
	args := m.Called(ctx, franchise)
	created, _ := args.Get(0).(*domain.Franchise)
	return created, args.Error(1)
}

func (m *FranchiseRepository) DeleteFranchise(ctx context.Context, franchiseID int64) error {
	return m.Called(ctx, franchiseID).Error(0)
}

func (m *FranchiseRepository) GetFranchise(ctx context.Context, franchiseID int64) (*domain.Franchise, error) {
	args := m.Called(ctx, franchiseID)
	franchise, _ := args.Get(0).(*domain.Franchise)
	return franchise, args.Error(1)
}

func (m *FranchiseRepository) CreateStore(ctx context.Context, franchiseID int64, store domain.Store) (*domain.Store, error) {
	args := m.Called(ctx, franchiseID, store)
	created, _ := args.Get(0).(*domain.Store)
	return created, args.Error(1)
}

func (m *FranchiseRepository) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	return m.Called(ctx, franchiseID, storeID).Error(0)
}

// MenuRepository mocks repository.MenuRepository.
type MenuRepository struct {
	mock.Mock
}

func (m *MenuRepository) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.MenuItem)
	return items, args.Error(1)
}

func (m *MenuRepository) AddMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(*domain.MenuItem)
	return created, args.Error(1)
}

// OrderRepository mocks repository.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetOrders(ctx context.Context, dinerID int64, page int) (*domain.OrderPage, error) {
	args := m.Called(ctx, dinerID, page)
	orders, _ := args.Get(0).(*domain.OrderPage)
	return orders, args.Error(1)
}

func (m *OrderRepository) AddDinerOrder(ctx context.Context, dinerID int64, req domain.OrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, dinerID, req)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}
