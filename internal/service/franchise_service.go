package service

import (
	"context"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/repository"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

// FranchiseService applies franchise and store access rules on top of the repository.
type FranchiseService struct {
	franchises repository.FranchiseRepository
}

// NewFranchiseService builds the service.
func NewFranchiseService(franchises repository.FranchiseRepository) *FranchiseService {
	return &FranchiseService{franchises: franchises}
}

// ListFranchises is open to everyone; admins also see franchise admins and store revenue.
func (s *FranchiseService) ListFranchises(ctx context.Context, actor *auth.AuthUser, query domain.ListQuery) ([]domain.Franchise, bool, error) {
	franchises, more, err := s.franchises.GetFranchises(ctx, query, auth.IsAdmin(actor))
	if err != nil {
		return nil, false, err
	}
	if franchises == nil {
		franchises = []domain.Franchise{}
	}
	return franchises, more, nil
}

// UserFranchises lists franchises administered by userID. Callers other than that user or an
// admin get an empty list rather than an error.
func (s *FranchiseService) UserFranchises(ctx context.Context, actor *auth.AuthUser, userID int64) ([]domain.Franchise, error) {
	if !auth.CanActOnUser(actor, userID) {
		return []domain.Franchise{}, nil
	}
	franchises, err := s.franchises.GetUserFranchises(ctx, userID)
	if err != nil {
		return nil, err
	}
	if franchises == nil {
		franchises = []domain.Franchise{}
	}
	return franchises, nil
}

// CreateFranchise is admin only.
func (s *FranchiseService) CreateFranchise(ctx context.Context, actor *auth.AuthUser, franchise domain.Franchise) (*domain.Franchise, error) {
	if !auth.IsAdmin(actor) {
		return nil, apperrors.NewForbidden("unauthorized")
	}
	return s.franchises.CreateFranchise(ctx, franchise)
}

// DeleteFranchise removes the franchise with its stores and admin roles.
func (s *FranchiseService) DeleteFranchise(ctx context.Context, franchiseID int64) error {
	return s.franchises.DeleteFranchise(ctx, franchiseID)
}

// CreateStore requires an admin or an admin of the franchise.
func (s *FranchiseService) CreateStore(ctx context.Context, actor *auth.AuthUser, franchiseID int64, store domain.Store) (*domain.Store, error) {
	if err := s.authorizeFranchise(ctx, actor, franchiseID); err != nil {
		return nil, err
	}
	return s.franchises.CreateStore(ctx, franchiseID, store)
}

// DeleteStore requires an admin or an admin of the franchise.
func (s *FranchiseService) DeleteStore(ctx context.Context, actor *auth.AuthUser, franchiseID, storeID int64) error {
	if err := s.authorizeFranchise(ctx, actor, franchiseID); err != nil {
		return err
	}
	return s.franchises.DeleteStore(ctx, franchiseID, storeID)
}

// authorizeFranchise denies a missing franchise the same way as a foreign one.
func (s *FranchiseService) authorizeFranchise(ctx context.Context, actor *auth.AuthUser, franchiseID int64) error {
	franchise, err := s.franchises.GetFranchise(ctx, franchiseID)
	if err != nil {
		return err
	}
	if !auth.CanManageFranchise(actor, franchise) {
		return apperrors.NewForbidden("unauthorized")
	}
	return nil
}
