package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-portal/internal/api/http"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/cache"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/features"
	"github.com/spec-kit/job-portal/internal/form"
	"github.com/spec-kit/job-portal/internal/observability"
	"github.com/spec-kit/job-portal/internal/persistence"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/internal/upstream"
	"github.com/spec-kit/job-portal/internal/worker"
)

const (
	memoryCacheSize     = 64
	upstreamIdlePerHost = 32
)

// upstreamTransport keeps more idle connections to the single backend host
// than the default transport does.
func upstreamTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = upstreamIdlePerHost
	return t
}

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg())
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	app, cleanup := buildApp(ctx, cfg, logger)
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("backend", cfg.Upstream.BaseURL))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	case <-waitForShutdown(logger):
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("shutdown", zap.Error(err))
	}
	return nil
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*fiber.App, func()) {
	if cfg.Auth.JWTSecret == "" {
		// Authenticated routes answer 500 until a secret is configured.
		logger.Error("JWT_SECRET is not set; authenticated pages are unavailable")
	}

	metrics := observability.NewMetrics()
	redis := persistence.NewRedis(cfg.Redis, logger)

	var store cache.Store
	var revocations auth.Revocations
	if redis.Enabled() {
		store = cache.NewRedisStore(redis.Client, cfg.Redis.CacheTTL())
		revocations = auth.NewRedisRevocations(redis.Client)
	} else {
		store = cache.NewMemoryStore(memoryCacheSize, cfg.Redis.CacheTTL())
		revocations = auth.NewMemoryRevocations()
	}

	flags := features.FromConfig(cfg.Features)
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	gate := auth.NewGate(codec, revocations, logger, cfg.Auth.CookieSecure).
		OnReject(func(c *fiber.Ctx, code string) {
			metrics.RecordError(c.Route().Path, c.Method(), code)
		})

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(), logger,
		upstream.WithHTTPClient(&http.Client{Transport: upstreamTransport()}),
		upstream.WithObserver(metrics),
	)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	validator := form.NewValidator(nil)
	authService := service.NewAuthService(service.AuthDependencies{
		Backend:     client,
		Codec:       codec,
		Revocations: revocations,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	jobRoleService := service.NewJobRoleService(service.JobRoleDependencies{
		Backend:    client,
		Cache:      store,
		Validator:  validator,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	applicationService := service.NewApplicationService(client, dispatcher, logger)

	app := httptransport.NewServer(httptransport.ServerDependencies{
		Config:       cfg,
		Logger:       logger,
		Metrics:      metrics,
		Redis:        redis,
		Features:     flags,
		Gate:         gate,
		Validator:    validator,
		Auth:         authService,
		JobRoles:     jobRoleService,
		Applications: applicationService,
		LoginLimiter: httptransport.NewRateLimiter(ctx, cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
	})

	logger.Info("feature flags", zap.Any("flags", flags.All()))
	return app, redis.Close
}

func waitForShutdown(logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		close(done)
	}()
	return done
}
