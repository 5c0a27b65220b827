package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/cronjob"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

const serviceName = "portfolio-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("store close", zap.Error(err))
		}
	}()
	logger.Info("project store ready", zap.String("backend", cfg.Store.Backend))

	source, err := bootstrap.OpenGitHub(ctx, cfg.GitHub)
	if err != nil {
		return err
	}

	requireAuth, err := bootstrap.RequireAuth(ctx, cfg.Firebase, logger)
	if err != nil {
		return err
	}

	sessions := service.NewRegistry(store,
		service.WithRegistrySource(source),
		service.WithRegistryLogger(logger),
		service.WithIdleTTL(cfg.Sessions.IdleTTL),
	)

	scheduler := cronjob.NewScheduler(logger)
	if err := scheduler.AddSweeper("sessions", cfg.Sessions.SweepSpec, sessions.Sweep); err != nil {
		return err
	}
	if err := scheduler.AddSweeper("github-cache", cfg.Sessions.SweepSpec, source.Sweep); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Backend:     cfg.Store.Backend,
		CORSOrigins: cfg.Server.CORSOrigins,
		Store:       store,
		Sessions:    sessions,
		Source:      source,
		RequireAuth: requireAuth,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
