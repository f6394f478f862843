package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/config"
	"github.com/spec-kit/pizza-service/internal/events"
)

// NotificationService reacts to domain events: it logs them and, when configured,
// forwards them to a webhook.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventOrderPlaced, n.handleOrderPlaced)
	n.dispatcher.Subscribe(events.EventOrderFulfilled, n.handleOrderFulfilled)
	n.dispatcher.Subscribe(events.EventOrderFailed, n.handleOrderFailed)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Int64("user_id", event.UserID))
	return n.forward(ctx, event)
}

func (n *NotificationService) handleOrderPlaced(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderPlaced", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOrderFulfilled(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderFulfilled", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

func (n *NotificationService) handleOrderFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("OrderFailed", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

// forward posts the event to the webhook. Failures are returned to the dispatcher, which logs them.
func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(url)
	agent.JSON(event)
	if timeout := n.cfg.Timeout(); timeout > 0 {
		agent.Timeout(timeout)
	}
	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("notify webhook: %w", errors.Join(errs...))
	}
	if status >= fiber.StatusBadRequest {
		return fmt.Errorf("notify webhook: status %d", status)
	}
	n.logger.Debug("event forwarded", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID))
	return nil
}
