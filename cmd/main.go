package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/model-router/config"
	"github.com/angeloszaimis/model-router/internal/handler"
	"github.com/angeloszaimis/model-router/internal/httpserver"
	"github.com/angeloszaimis/model-router/internal/router"
	"github.com/angeloszaimis/model-router/internal/transport"
	"github.com/angeloszaimis/model-router/pkg/logger"
)

// healthSweepInterval drives the periodic circuit reconciliation. Open
// circuits cannot recover without a sweep, so it runs for the process
// lifetime alongside on-demand GET /health calls.
const healthSweepInterval = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	adapter := transport.NewClient(log)

	rt, err := router.New(cfg, adapter, log)
	if err != nil {
		log.Error("failed to build router", slog.Any("err", err))
		os.Exit(1)
	}
	defer rt.Close()

	routerHandler := handler.NewRouterHandler(log, rt)

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(routerHandler))
	if err != nil {
		log.Error("failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	go runHealthSweeps(ctx, rt, log)

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("model router listening",
		slog.String("address", cfg.Server.Address),
		slog.Int("endpoints", len(cfg.Endpoints)))

	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func runHealthSweeps(ctx context.Context, rt *router.Router, log *slog.Logger) {
	ticker := time.NewTicker(healthSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("health sweeps stopped")
			return
		case <-ticker.C:
			rt.HealthCheck(ctx)
		}
	}
}
