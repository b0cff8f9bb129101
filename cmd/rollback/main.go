package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/adapters/lunchmoney"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/application/reconcile"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/cli"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/config"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/logging"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

func main() {
	flags := cli.ParseRollbackFlags()

	cfg := loadConfig(flags.ConfigFile)
	if flags.Verbose {
		cfg.Observability.Logging.Level = "debug"
	}
	logger := logging.NewLogger(cfg.Observability.Logging)

	window, err := flags.Window()
	if err != nil {
		logger.Error("Invalid date range", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.LunchMoney.APIKey == "" {
		logger.Error("LUNCHMONEY_API_KEY not set")
		os.Exit(1)
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	client := lunchmoney.NewClient(lunchmoney.Config{
		APIKey:  cfg.LunchMoney.APIKey,
		BaseURL: cfg.LunchMoney.BaseURL,
	}, logger)

	var confirmer reconcile.Confirmer
	if flags.Yes {
		confirmer = cli.NewAutoApprover(os.Stdout)
	} else {
		confirmer = cli.NewPrompter(os.Stdin, os.Stdout)
	}

	orchestrator := reconcile.NewOrchestrator(client, store, confirmer, logger)

	result, err := orchestrator.Rollback(context.Background(), window)
	if err != nil {
		logger.Error("Rollback failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cli.PrintRollbackSummary(os.Stdout, result)

	if len(result.FailedIDs) > 0 {
		os.Exit(1)
	}
}

func loadConfig(configFile string) *config.Config {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			slog.Error("Failed to load config file", "file", configFile, "error", err.Error())
			os.Exit(1)
		}
		return cfg
	}
	return config.LoadOrEnv()
}
