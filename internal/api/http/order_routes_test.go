package http

import (
	nethttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/factory"
)

var veggie = domain.OrderItem{MenuID: 1, Description: "Veggie", Price: 0.05}

func orderPayload() map[string]any {
	return map[string]any{
		"franchiseId": 1,
		"storeId":     1,
		"items":       []domain.OrderItem{veggie},
	}
}

func TestMenuIsOpen(t *testing.T) {
	env := newTestEnv(t)
	env.menu.On("GetMenu", mock.Anything).Return([]domain.MenuItem{{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"}}, nil)

	resp := env.do(t, nethttp.MethodGet, "/api/order/menu", "", nil)

	require.Equal(t, nethttp.StatusOK, resp.status)
	var menu []domain.MenuItem
	resp.decode(t, &menu)
	require.Len(t, menu, 1)
	assert.Equal(t, "Veggie", menu[0].Title)
}

func TestAddMenuItemAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	item := domain.MenuItem{Title: "Student", Description: "No topping, no sauce, just carbs", Image: "pizza9.png", Price: 0.0001}
	env.menu.On("AddMenuItem", mock.Anything, item).Return(&domain.MenuItem{ID: 2}, nil)
	env.menu.On("GetMenu", mock.Anything).Return([]domain.MenuItem{{ID: 2, Title: "Student"}}, nil)
	payload := map[string]any{"title": "Student", "description": "No topping, no sauce, just carbs", "image": "pizza9.png", "price": 0.0001}

	resp := env.do(t, nethttp.MethodPut, "/api/order/menu", env.login(t, 3), payload)
	assert.Equal(t, nethttp.StatusForbidden, resp.status)
	assert.Equal(t, "unauthorized", resp.object(t)["message"])

	resp = env.do(t, nethttp.MethodPut, "/api/order/menu", env.login(t, 1, adminRole()), payload)
	require.Equal(t, nethttp.StatusOK, resp.status, string(resp.raw))
	var menu []domain.MenuItem
	resp.decode(t, &menu)
	assert.Equal(t, []domain.MenuItem{{ID: 2, Title: "Student"}}, menu)
	env.menu.AssertNumberOfCalls(t, "AddMenuItem", 1)
}

func TestListOrdersForCaller(t *testing.T) {
	env := newTestEnv(t)
	page := &domain.OrderPage{DinerID: 4, Orders: []domain.Order{}, Page: 1}
	env.orders.On("GetOrders", mock.Anything, int64(4), 1).Return(page, nil)
	env.orders.On("GetOrders", mock.Anything, int64(4), 3).Return(&domain.OrderPage{DinerID: 4, Orders: []domain.Order{}, Page: 3}, nil)
	token := env.login(t, 4)

	resp := env.do(t, nethttp.MethodGet, "/api/order", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.status)
	assert.JSONEq(t, `{"dinerId":4,"orders":[],"page":1}`, string(resp.raw))

	resp = env.do(t, nethttp.MethodGet, "/api/order?page=3", token, nil)
	assert.EqualValues(t, 3, resp.object(t)["page"])
}

func TestCreateOrderFulfilled(t *testing.T) {
	env := newTestEnv(t)
	stored := &domain.Order{ID: 9, FranchiseID: 1, StoreID: 1, Date: time.Date(2024, 6, 5, 5, 14, 40, 0, time.UTC), Items: []domain.OrderItem{veggie}}
	env.orders.On("AddDinerOrder", mock.Anything, int64(4), domain.OrderRequest{FranchiseID: 1, StoreID: 1, Items: []domain.OrderItem{veggie}}).Return(stored, nil)
	env.factory.On("Submit", mock.Anything, domain.Diner{ID: 4, Name: "pizza user", Email: "user@jwt.com"}, stored).
		Return(&factory.Receipt{ReportURL: "https://pizza-factory.cs329.click/report/9", JWT: "factory.jwt.value"}, nil)

	resp := env.do(t, nethttp.MethodPost, "/api/order", env.login(t, 4), orderPayload())

	require.Equal(t, nethttp.StatusOK, resp.status, string(resp.raw))
	body := resp.object(t)
	assert.Equal(t, "factory.jwt.value", body["jwt"])
	assert.Equal(t, "https://pizza-factory.cs329.click/report/9", body["followLinkToEndChaos"])
	assert.EqualValues(t, 9, body["order"].(map[string]any)["id"])
}

func TestCreateOrderFactoryFailure(t *testing.T) {
	env := newTestEnv(t)
	stored := &domain.Order{ID: 9, FranchiseID: 1, StoreID: 1, Items: []domain.OrderItem{veggie}}
	env.orders.On("AddDinerOrder", mock.Anything, int64(4), mock.Anything).Return(stored, nil)
	env.factory.On("Submit", mock.Anything, mock.Anything, stored).
		Return(nil, &factory.RejectedError{Status: nethttp.StatusInternalServerError, Receipt: factory.Receipt{ReportURL: "https://chaos.example/9"}})

	resp := env.do(t, nethttp.MethodPost, "/api/order", env.login(t, 4), orderPayload())

	assert.Equal(t, nethttp.StatusInternalServerError, resp.status)
	body := resp.object(t)
	assert.Equal(t, "Failed to fulfill order at factory", body["message"])
	assert.Equal(t, "https://chaos.example/9", body["followLinkToEndChaos"])
	env.orders.AssertNumberOfCalls(t, "AddDinerOrder", 1)
	env.factory.AssertNumberOfCalls(t, "Submit", 1)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, nethttp.MethodPost, "/api/order", env.login(t, 4), map[string]any{"franchiseId": 1})

	assert.Equal(t, nethttp.StatusBadRequest, resp.status)
	env.orders.AssertNotCalled(t, "AddDinerOrder", mock.Anything, mock.Anything, mock.Anything)
}
