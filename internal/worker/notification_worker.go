package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/service"
)

const defaultQueueSize = 256

// NotificationWorker queues published events and delivers them to the wrapped dispatcher on
// its own goroutine. It satisfies events.Dispatcher so services publish to it directly.
type NotificationWorker struct {
	inner  events.Dispatcher
	queue  chan events.Event
	logger *zap.Logger

	mu      sync.RWMutex
	stopped bool
	cancel  context.CancelFunc
	done    sync.WaitGroup
}

var _ events.Dispatcher = (*NotificationWorker)(nil)

// NewNotificationWorker wraps inner with a queue of size buffer.
func NewNotificationWorker(inner events.Dispatcher, buffer int, logger *zap.Logger) *NotificationWorker {
	if buffer <= 0 {
		buffer = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		inner:  inner,
		queue:  make(chan events.Event, buffer),
		logger: logger,
	}
}

// Publish enqueues the event. A full queue or a stopped worker drops it with a warning.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		w.logger.Warn("notification worker stopped, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
		return nil
	}

	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
	}
	return nil
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Start registers the notification handlers and begins delivery until Stop or ctx ends.
func (w *NotificationWorker) Start(ctx context.Context, notifications *service.NotificationService) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done.Add(1)
	go func() {
		defer w.done.Done()
		w.run(ctx)
	}()
}

// Stop refuses further events, delivers the ones already queued and waits for the goroutine
// to exit.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	w.done.Wait()
}

func (w *NotificationWorker) run(ctx context.Context) {
	deliverCtx := context.WithoutCancel(ctx)
	for {
		select {
		case event := <-w.queue:
			w.deliver(deliverCtx, event)
		case <-ctx.Done():
			for {
				select {
				case event := <-w.queue:
					w.deliver(deliverCtx, event)
				default:
					return
				}
			}
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.inner.Publish(ctx, event); err != nil {
		w.logger.Warn("event delivery failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
