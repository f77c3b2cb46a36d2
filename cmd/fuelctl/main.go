// Command fuelctl is an interactive shell over the fuel logbook.
package main

import (
	"context"
	"os"

	"fueltracker/internal/cli"
	"fueltracker/internal/gate"
	applog "fueltracker/internal/log"
	"fueltracker/internal/services"
)

func main() {
	cli.LoadEnvFile()
	// logs go to stderr so they never interleave with tables on stdout
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), os.Stderr)

	cfg, err := cli.LoadAndValidateConfig(logger)
	if err != nil {
		os.Exit(1)
	}

	ctx := context.Background()
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

	app := cli.NewApp(entries, gate.New(cfg.AdminSecret), os.Stdin, os.Stdout, int(os.Stdin.Fd()), logger)
	app.Run(ctx)
}
