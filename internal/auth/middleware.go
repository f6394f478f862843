package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/domain"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

const authenticationKey = "auth_authentication"

// AuthMiddleware derives the caller from bearer tokens and live sessions.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions SessionStore
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionStore, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, sessions: sessions, logger: logger}
}

// DeriveUser records what the Authorization header proves about the caller. It never rejects
// a request on its own; only session store failures abort it.
func (m *AuthMiddleware) DeriveUser(c *fiber.Ctx) error {
	token, present := readAuthToken(c.Get(fiber.HeaderAuthorization))
	if !present {
		return c.Next()
	}

	identity, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Debug("rejecting bearer token", zap.Error(err))
		c.Locals(authenticationKey, Authentication{State: StateInvalid, Token: token})
		return c.Next()
	}

	active, err := m.sessions.IsActive(c.UserContext(), token)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if !active {
		return c.Next()
	}

	user := NewAuthUser(identity)
	c.Locals(authenticationKey, Authentication{State: StateAuthenticated, User: &user, Token: token})
	return c.Next()
}

// RequireAuthenticated rejects requests without a live session.
func (m *AuthMiddleware) RequireAuthenticated(c *fiber.Ctx) error {
	if !AuthenticationFromContext(c).Authenticated() {
		return apperrors.NewUnauthorized("unauthorized")
	}
	return c.Next()
}

// IssueSession signs a token for identity and records it as logged in before returning it.
func (m *AuthMiddleware) IssueSession(ctx context.Context, identity domain.Identity) (string, error) {
	token, err := m.tokens.Sign(identity)
	if err != nil {
		return "", err
	}
	if err := m.sessions.RecordLogin(ctx, identity.ID, token); err != nil {
		return "", fmt.Errorf("record login: %w", err)
	}
	return token, nil
}

// RevokeSession logs the token out. Revoking an unknown token is not an error.
func (m *AuthMiddleware) RevokeSession(ctx context.Context, token string) error {
	if err := m.sessions.RecordLogout(ctx, token); err != nil {
		return fmt.Errorf("record logout: %w", err)
	}
	return nil
}

// AuthenticationFromContext returns the outcome stored by DeriveUser; the zero value is StateAbsent.
func AuthenticationFromContext(c *fiber.Ctx) Authentication {
	val, ok := c.Locals(authenticationKey).(Authentication)
	if !ok {
		return Authentication{State: StateAbsent}
	}
	return val
}

// UserFromContext retrieves the authenticated caller.
func UserFromContext(c *fiber.Ctx) (*AuthUser, bool) {
	authn := AuthenticationFromContext(c)
	if !authn.Authenticated() {
		return nil, false
	}
	return authn.User, true
}

// WithAuthentication stores an outcome directly; routers under test use it in place of DeriveUser.
func WithAuthentication(authn Authentication) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(authenticationKey, authn)
		return c.Next()
	}
}

// readAuthToken takes the second field of the header. A header without a token counts as absent.
func readAuthToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}
