package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/repository"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

// SessionIssuer signs tokens for identities and tracks them as logged in.
type SessionIssuer interface {
	IssueSession(ctx context.Context, identity domain.Identity) (string, error)
	RevokeSession(ctx context.Context, token string) error
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	sessions   SessionIssuer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   SessionIssuer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register creates a diner account and logs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, "", apperrors.NewValidationError("name, email, and password are required", nil)
	}

	user, err := s.users.AddUser(ctx, &domain.User{
		Name:  name,
		Email: email,
		Roles: []domain.RoleAssignment{{Role: domain.RoleDiner}},
	}, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.IssueSession(ctx, user.Identity())
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: user.Email}))
	return user, token, nil
}

// Login authenticates by email and password and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUser(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.sessions.IssueSession(ctx, user.Identity())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout ends the session of token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.RevokeSession(ctx, token)
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
