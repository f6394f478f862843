package service

import (
	"context"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/repository"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

// UserService manages account updates and listings.
type UserService struct {
	users    repository.UserRepository
	sessions SessionIssuer
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, sessions SessionIssuer) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// UpdateUser applies patch to the target account and returns it with a freshly issued token.
// Only the account owner or an admin may update.
func (s *UserService) UpdateUser(ctx context.Context, actor *auth.AuthUser, targetID int64, patch domain.UserPatch) (*domain.User, string, error) {
	if !auth.CanActOnUser(actor, targetID) {
		return nil, "", apperrors.NewForbidden("unauthorized")
	}

	user, err := s.users.UpdateUser(ctx, targetID, patch)
	if err != nil {
		return nil, "", err
	}
	token, err := s.sessions.IssueSession(ctx, user.Identity())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ListUsers returns one page of users matching query.
func (s *UserService) ListUsers(ctx context.Context, query domain.ListQuery) ([]domain.User, bool, error) {
	users, more, err := s.users.ListUsers(ctx, query)
	if err != nil {
		return nil, false, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, more, nil
}
