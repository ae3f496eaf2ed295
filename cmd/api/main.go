package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vcodigo/orderlist-api/internal/infrastructure/di"
	"github.com/vcodigo/orderlist-api/internal/infrastructure/worker"
	groupcmd "github.com/vcodigo/orderlist-api/internal/usecase/group/command"
	"github.com/vcodigo/orderlist-api/internal/interface/middleware"
	"github.com/vcodigo/orderlist-api/internal/interface/router"
	"github.com/vcodigo/orderlist-api/internal/interface/server"
	"github.com/vcodigo/orderlist-api/internal/interface/validator"
	"github.com/vcodigo/orderlist-api/pkg/config"
	"github.com/vcodigo/orderlist-api/pkg/logger"
)

func main() {
	// Logger setup
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Initialize UseCases and Handlers
	container.InitGroupUseCases()
	handlers := di.NewHandlers(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	srv := server.NewServer(serverConfig)
	e := srv.Echo()

	// Setup validator and error handler
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Security.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID", middleware.HeaderUserID},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Setup Router
	router.NewRouter(e, handlers).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	if container.PgClient != nil {
		workerMgr.Register(worker.NewHealthCheckJob(func(ctx context.Context) error {
			return container.PgClient.Health(ctx)
		}, cfg.Worker.HealthCheckInterval))
	}
	workerMgr.Register(worker.NewEmptyGroupPurgeJob(func(ctx context.Context, limit int) (int, error) {
		output, err := container.Group.PurgeEmptyGroups.Execute(ctx, groupcmd.PurgeEmptyGroupsInput{Limit: limit})
		if err != nil {
			return 0, err
		}
		return output.PurgedCount, nil
	}, worker.EmptyGroupPurgeJobConfig{
		Interval:   cfg.Worker.PurgeInterval,
		BatchLimit: cfg.Worker.PurgeBatchLimit,
	}))
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "port", cfg.Server.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config().ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
