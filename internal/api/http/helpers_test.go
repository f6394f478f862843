package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	"github.com/spec-kit/pizza-service/internal/api/http/handlers"
	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/factory"
	"github.com/spec-kit/pizza-service/internal/observability"
	"github.com/spec-kit/pizza-service/internal/repository/repositorytest"
	"github.com/spec-kit/pizza-service/internal/service"
)

const testVersion = "20240202.120000"

type fulfillerMock struct {
	mock.Mock
}

func (m *fulfillerMock) Submit(ctx context.Context, diner domain.Diner, order *domain.Order) (*factory.Receipt, error) {
	args := m.Called(ctx, diner, order)
	receipt, _ := args.Get(0).(*factory.Receipt)
	return receipt, args.Error(1)
}

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

type testEnv struct {
	app        *fiber.App
	middleware *auth.AuthMiddleware
	sessions   *auth.MemorySessionStore
	metrics    *observability.Metrics
	users      *repositorytest.UserRepository
	franchises *repositorytest.FranchiseRepository
	menu       *repositorytest.MenuRepository
	orders     *repositorytest.OrderRepository
	factory    *fulfillerMock
}

type envOption func(*handlers.HealthDependencies)

func withRedis(p handlers.Pinger) envOption {
	return func(d *handlers.HealthDependencies) { d.Redis = p }
}

func withPostgres(p handlers.Pinger) envOption {
	return func(d *handlers.HealthDependencies) { d.Postgres = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	env := &testEnv{
		sessions:   auth.NewMemorySessionStore(),
		metrics:    observability.NewMetrics(),
		users:      &repositorytest.UserRepository{},
		franchises: &repositorytest.FranchiseRepository{},
		menu:       &repositorytest.MenuRepository{},
		orders:     &repositorytest.OrderRepository{},
		factory:    &fulfillerMock{},
	}
	env.middleware = auth.NewAuthMiddleware(auth.NewTokenManager("test-secret"), env.sessions, nil)
	dispatcher := events.NewInMemoryDispatcher(nil)

	health := handlers.HealthDependencies{
		ServiceName: "pizza-service",
		Version:     testVersion,
		Postgres:    pingerStub{},
		Metrics:     env.metrics,
	}
	for _, opt := range opts {
		opt(&health)
	}

	env.app = NewServer("pizza-service-test", MiddlewareConfig{
		Metrics:      env.metrics,
		AllowOrigins: []string{"http://localhost:5173"},
	}, RouteConfig{
		Version:    testVersion,
		DocsConfig: dto.DocsConfig{Factory: "https://pizza-factory.cs329.click", DB: "localhost"},
		Health:     handlers.NewHealthHandler(health),
		Auth: handlers.NewAuthHandler(service.NewAuthService(service.AuthDependencies{
			UserRepo:   env.users,
			Sessions:   env.middleware,
			Dispatcher: dispatcher,
		})),
		Users:      handlers.NewUserHandler(service.NewUserService(env.users, env.middleware), 10),
		Franchises: handlers.NewFranchiseHandler(service.NewFranchiseService(env.franchises), 10),
		Orders: handlers.NewOrderHandler(service.NewOrderService(service.OrderDependencies{
			MenuRepo:   env.menu,
			OrderRepo:  env.orders,
			Factory:    env.factory,
			Dispatcher: dispatcher,
		})),
		AuthMiddleware: env.middleware,
	})
	return env
}

func (e *testEnv) login(t *testing.T, id int64, roles ...domain.RoleAssignment) string {
	t.Helper()
	if len(roles) == 0 {
		roles = []domain.RoleAssignment{{Role: domain.RoleDiner}}
	}
	token, err := e.middleware.IssueSession(context.Background(), domain.Identity{
		ID:    id,
		Name:  "pizza user",
		Email: "user@jwt.com",
		Roles: roles,
	})
	require.NoError(t, err)
	return token
}

func adminRole() domain.RoleAssignment {
	return domain.RoleAssignment{Role: domain.RoleAdmin}
}

type response struct {
	status int
	header nethttp.Header
	raw    []byte
}

func (r response) object(t *testing.T) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.raw, v), string(r.raw))
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, raw: raw}
}

var errDatabaseDown = errors.New("database down")
