package main

import (
	"context"
	"flag"
	"os"

	"ledger/internal/cli"
	"ledger/internal/log"
)

func main() {
	filePath := flag.String("file", "", "ledger file (.json, .csv, .yaml); overrides LEDGER_FILE")
	backendType := flag.String("backend", "", "storage backend (file or sqlite); overrides LEDGER_BACKEND")
	flag.Parse()

	// Load .env file for local development
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(cli.Overrides{FilePath: *filePath, Backend: *backendType})
	if err != nil {
		fatal(cli.SetupLogger(nil), "Configuration validation failed", err)
	}

	logger := cli.SetupLogger(cfg)
	logger.Info("Starting ledger",
		log.FieldBackend, cfg.Backend,
		"amqp_enabled", cfg.AMQPEnabled(),
		log.FieldOperation, log.OpStartup)

	ctx := context.Background()
	svc, err := cli.InitService(ctx, cfg, logger)
	if err != nil {
		fatal(logger, "Failed to open ledger", err)
	}

	menu := cli.NewMenu(svc, os.Stdin, os.Stdout, logger)
	runErr := menu.Run(ctx)

	if err := svc.Close(); err != nil {
		logger.Warn("Failed to close ledger", log.FieldError, err)
	}
	logger.Info("Ledger closed", log.FieldOperation, log.OpShutdown)

	if runErr != nil {
		os.Exit(1)
	}
}

func fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err)
	os.Exit(1)
}
