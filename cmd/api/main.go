package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/nationsapi/nations-service/internal/api/http"
	"github.com/nationsapi/nations-service/internal/api/http/handlers"
	"github.com/nationsapi/nations-service/internal/auth"
	"github.com/nationsapi/nations-service/internal/config"
	"github.com/nationsapi/nations-service/internal/events"
	"github.com/nationsapi/nations-service/internal/observability"
	"github.com/nationsapi/nations-service/internal/persistence"
	"github.com/nationsapi/nations-service/internal/query"
	"github.com/nationsapi/nations-service/internal/repository"
	"github.com/nationsapi/nations-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("nations")
	}

	pool := repository.PoolQuerier(pg.PoolHandle())
	userRepo := repository.NewUserRepository(pool)
	nationsRepo := repository.NewNationsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	tokens := auth.LoggedTokens(auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenValidity()), logger)
	credentials := service.NewCredentialService(userRepo)
	throttle := auth.NewLoginThrottle(redis.UniversalClient(), cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Users:       userRepo,
		Credentials: credentials,
		Tokens:      tokens,
		Throttle:    throttle,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	composer := query.LoggedComposer(query.NewBuilder(), logger)
	nationsService := service.NewNationsService(nationsRepo, composer, query.DefaultPolicies())

	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:        handlers.NewAuthHandler(authService),
		Nations:     handlers.NewNationsHandler(nationsService),
		Gate:        auth.NewGate(tokens, credentials, logger, metrics),
		Logger:      logger,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
