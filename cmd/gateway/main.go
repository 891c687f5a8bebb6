package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-app-go/internal/config"
	"finance-app-go/internal/transport/gateway"
	"finance-app-go/internal/transport/httpserver"
	"finance-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()
	log.Info("gateway: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("gateway: load config failed", "err", err)
		os.Exit(1)
	}

	proxy := gateway.New(cfg.Gateway, log)
	srv := httpserver.New(cfg.Gateway.Port, proxy)
	log.Info("gateway: listening", "addr", srv.Addr, "backend_url", cfg.Gateway.BackendURL)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("gateway: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("gateway: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("gateway: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("gateway: stopped")
}
