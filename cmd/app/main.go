package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rate_relay/internal/app"
	"rate_relay/internal/infra/privat"
	"rate_relay/internal/server"
	"rate_relay/internal/service"
)

func main() {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Shutdown()

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config

	// 3. Upstream client + aggregator
	client := privat.NewClient(cfg)
	client.SetMetrics(bootstrap.Metrics)

	agg := service.NewAggregator(client)
	if bootstrap.Journal != nil {
		client.SetRecorder(bootstrap.Journal)
		agg.SetRecorder(bootstrap.Journal)
	}

	// 4. Broadcast server
	srv := server.New(cfg, agg, bootstrap.Metrics)
	slog.InfoContext(ctx, "✅ Relay server starting", slog.String("addr", cfg.Addr()))

	if err := srv.Start(ctx); err != nil {
		slog.Error("Server failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}
