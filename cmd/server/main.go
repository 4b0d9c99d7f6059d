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

	"github.com/xtding233/wishsim-backend/internal/config"
	"github.com/xtding233/wishsim-backend/internal/logger"
	"github.com/xtding233/wishsim-backend/internal/preset"
	"github.com/xtding233/wishsim-backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	presets := preset.NewLoader(cfg.PresetDir)
	if _, err := presets.Banner("default"); err != nil {
		return fmt.Errorf("load default preset: %w", err)
	}

	if cfg.WatchIntervalMS > 0 {
		paths, err := presets.Paths()
		if err != nil {
			return err
		}
		w := preset.NewWatcher(paths, time.Duration(cfg.WatchIntervalMS)*time.Millisecond, func(path string) {
			log.Info("preset changed, reloading", "path", path)
			presets.Invalidate()
		})
		w.Start()
		defer w.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(cfg, log, presets, server.NewMetrics()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
