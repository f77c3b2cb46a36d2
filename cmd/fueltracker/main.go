package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fueltracker/internal/cli"
	"fueltracker/internal/gate"
	apphttp "fueltracker/internal/http"
	applog "fueltracker/internal/log"
	"fueltracker/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), os.Stdout)

	cfg, err := cli.LoadAndValidateConfig(logger)
	if err != nil {
		os.Exit(1)
	}

	ctx, cancel := cli.GracefulShutdown(context.Background(), logger)
	defer cancel()

	res, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		os.Exit(1)
	}

	entries := services.NewEntryService(res.Store, logger)
	defer func() {
		if err := entries.Close(); err != nil {
			logger.Error("Failed to close entry store", applog.FieldError, err)
		}
	}()

	var opts []apphttp.Option
	if p, ok := res.Store.(apphttp.Pinger); ok {
		opts = append(opts, apphttp.WithReadiness(p))
	}
	srv := apphttp.NewServer(cfg.Addr(), entries, gate.New(cfg.AdminSecret), logger, opts...)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting fueltracker server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldOperation, applog.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		cancel()
		_ = entries.Close()
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}
