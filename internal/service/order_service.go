package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/factory"
	"github.com/spec-kit/pizza-service/internal/repository"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

const factoryFailureMessage = "Failed to fulfill order at factory"

// Fulfiller forwards a stored order to the pizza factory.
type Fulfiller interface {
	Submit(ctx context.Context, diner domain.Diner, order *domain.Order) (*factory.Receipt, error)
}

// PlacedOrder is a stored order together with the factory receipt.
type PlacedOrder struct {
	Order     *domain.Order
	ReportURL string
	JWT       string
}

// OrderService coordinates the menu, order history and factory fulfillment.
type OrderService struct {
	menu       repository.MenuRepository
	orders     repository.OrderRepository
	factory    Fulfiller
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	MenuRepo   repository.MenuRepository
	OrderRepo  repository.OrderRepository
	Factory    Fulfiller
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		menu:       deps.MenuRepo,
		orders:     deps.OrderRepo,
		factory:    deps.Factory,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Menu returns every menu item.
func (s *OrderService) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.menu.GetMenu(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

// AddMenuItem is admin only and returns the updated menu.
func (s *OrderService) AddMenuItem(ctx context.Context, actor *auth.AuthUser, item domain.MenuItem) ([]domain.MenuItem, error) {
	if !auth.IsAdmin(actor) {
		return nil, apperrors.NewForbidden("unauthorized")
	}
	if _, err := s.menu.AddMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return s.Menu(ctx)
}

// Orders returns a page of the caller's own orders.
func (s *OrderService) Orders(ctx context.Context, actor *auth.AuthUser, page int) (*domain.OrderPage, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("unauthorized")
	}
	return s.orders.GetOrders(ctx, actor.ID, page)
}

// PlaceOrder stores the order and forwards it to the factory once. The stored order is kept
// when the factory fails.
func (s *OrderService) PlaceOrder(ctx context.Context, actor *auth.AuthUser, req domain.OrderRequest) (*PlacedOrder, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("unauthorized")
	}

	order, err := s.orders.AddDinerOrder(ctx, actor.ID, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventOrderPlaced, actor.ID, events.OrderPlacedPayload{
		OrderID:     order.ID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		ItemCount:   len(order.Items),
		Total:       orderTotal(order),
	}))

	receipt, err := s.factory.Submit(ctx, actor.Diner(), order)
	if err != nil {
		return nil, s.factoryFailure(ctx, actor.ID, order.ID, err)
	}

	s.publish(ctx, events.NewEvent(events.EventOrderFulfilled, actor.ID, events.OrderFulfilledPayload{
		OrderID:   order.ID,
		ReportURL: receipt.ReportURL,
	}))
	return &PlacedOrder{Order: order, ReportURL: receipt.ReportURL, JWT: receipt.JWT}, nil
}

func (s *OrderService) factoryFailure(ctx context.Context, dinerID, orderID int64, err error) error {
	var reportURL string
	var rejected *factory.RejectedError
	if errors.As(err, &rejected) {
		reportURL = rejected.Receipt.ReportURL
	}

	s.logger.Warn("factory order failed", zap.Int64("order_id", orderID), zap.Error(err))
	s.publish(ctx, events.NewEvent(events.EventOrderFailed, dinerID, events.OrderFailedPayload{
		OrderID:   orderID,
		ReportURL: reportURL,
		Reason:    err.Error(),
	}))

	var details map[string]any
	if reportURL != "" {
		details = map[string]any{"followLinkToEndChaos": reportURL}
	}
	return apperrors.NewUpstreamFailure(factoryFailureMessage, details, err)
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func orderTotal(order *domain.Order) float64 {
	var total float64
	for _, item := range order.Items {
		total += item.Price
	}
	return total
}
