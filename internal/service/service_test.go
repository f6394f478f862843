package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/factory"
)

type sessionsMock struct {
	mock.Mock
}

func (m *sessionsMock) IssueSession(ctx context.Context, identity domain.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *sessionsMock) RevokeSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type fulfillerMock struct {
	mock.Mock
}

func (m *fulfillerMock) Submit(ctx context.Context, diner domain.Diner, order *domain.Order) (*factory.Receipt, error) {
	args := m.Called(ctx, diner, order)
	receipt, _ := args.Get(0).(*factory.Receipt)
	return receipt, args.Error(1)
}

type capturingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		out = append(out, event.Type)
	}
	return out
}

func actor(id int64, roles ...domain.RoleAssignment) *auth.AuthUser {
	user := auth.NewAuthUser(domain.Identity{ID: id, Name: "user", Email: "user@jwt.com", Roles: roles})
	return &user
}

func adminRole() domain.RoleAssignment {
	return domain.RoleAssignment{Role: domain.RoleAdmin}
}

func dinerRole() domain.RoleAssignment {
	return domain.RoleAssignment{Role: domain.RoleDiner}
}
