package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	httptransport "github.com/spec-kit/pizza-service/internal/api/http"
	"github.com/spec-kit/pizza-service/internal/api/http/handlers"
	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/config"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/factory"
	"github.com/spec-kit/pizza-service/internal/observability"
	"github.com/spec-kit/pizza-service/internal/persistence"
	"github.com/spec-kit/pizza-service/internal/repository"
	"github.com/spec-kit/pizza-service/internal/service"
	"github.com/spec-kit/pizza-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	pool := pg.Pool

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var sessions auth.SessionStore = repository.NewSessionRepository(pool)
	var redisPinger handlers.Pinger
	if redis.Enabled() {
		sessions = auth.NewCachedSessionStore(sessions, redis.Client, redis.SessionTTL, logger)
		redisPinger = redis
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokens, sessions, logger)

	userRepo := repository.NewUserRepository(pool, auth.NewPasswordHasher(cfg.Auth.BcryptCost))
	franchiseRepo := repository.NewFranchiseRepository(pool)
	menuRepo := repository.NewMenuRepository(pool)
	orderRepo := repository.NewOrderRepository(pool, cfg.Pagination.ListPerPage)
	factoryClient := factory.NewClient(cfg.Factory.URL, cfg.Factory.APIKey, cfg.Factory.Timeout())

	notifications := worker.NewNotificationWorker(events.NewInMemoryDispatcher(logger), 0, logger)
	notifications.Start(ctx, service.NewNotificationService(notifications, logger, cfg.Notification))
	defer notifications.Stop()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   authMiddleware,
		Dispatcher: notifications,
		Logger:     logger,
	})
	userService := service.NewUserService(userRepo, authMiddleware)
	franchiseService := service.NewFranchiseService(franchiseRepo)
	orderService := service.NewOrderService(service.OrderDependencies{
		MenuRepo:   menuRepo,
		OrderRepo:  orderRepo,
		Factory:    factoryClient,
		Dispatcher: notifications,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewServer(cfg.App.Name, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowOrigins:   cfg.CORS.AllowOrigins,
	}, httptransport.RouteConfig{
		Version:    cfg.App.Version,
		DocsConfig: dto.DocsConfig{Factory: factoryClient.BaseURL(), DB: pg.Host()},
		Health: handlers.NewHealthHandler(handlers.HealthDependencies{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Postgres:    pg,
			Redis:       redisPinger,
			Metrics:     metrics,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUserHandler(userService, cfg.Pagination.ListPerPage),
		Franchises:     handlers.NewFranchiseHandler(franchiseService, cfg.Pagination.ListPerPage),
		Orders:         handlers.NewOrderHandler(orderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
