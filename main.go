package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"chatrelaygo/internal/client"
	"chatrelaygo/internal/config"
	"chatrelaygo/internal/http/http_server"
	"chatrelaygo/internal/metrics"
	"chatrelaygo/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: chatrelaygo <server|client|both>")
		os.Exit(2)
	}

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	switch os.Args[1] {
	case "server":
		if err := runServer(ctx, cfg); err != nil {
			Log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	case "client":
		if err := runClient(ctx, cfg); err != nil {
			Log.Fatal("Client session ended", zap.Error(err))
		}
	case "both":
		serverErr := make(chan error, 1)
		go func() { serverErr <- runServer(ctx, cfg) }()
		if err := runClient(ctx, cfg); err != nil {
			Log.Error("Client session ended", zap.Error(err))
		}
		// Keep serving until the signal context shuts the server down.
		if err := <-serverErr; err != nil {
			Log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	default:
		fmt.Fprintln(os.Stderr, "Invalid argument. Use either 'server', 'client', or 'both'.")
		os.Exit(2)
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	// Hub + room metrics
	mtr := metrics.NewRelay(prometheus.DefaultRegisterer)
	hub := ws.NewHub(mtr)

	// WS server (sessions + command routing)
	wsSrv := ws.NewWsServer(hub, cfg.SessionQueueSize)

	// HTTP + WS server; a bind failure is fatal at startup.
	httpServer := http_server.NewHttpServer(cfg.HttpServerPort, wsSrv, hub)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		<-ctx.Done()
		if err := httpServer.Dispose(); err != nil {
			Log.Error("HTTP server shutdown", zap.Error(err))
		}
	}()

	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runClient(ctx context.Context, cfg *config.Config) error {
	return client.NewShell(cfg).Run(ctx)
}
