package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/api"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/config"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/logging"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "", "Configuration file path")
		port       = flag.Int("port", 0, "Listen port (overrides config)")
	)
	flag.Parse()

	var cfg *config.Config
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			slog.Error("Failed to load config file", "file", *configFile, "error", err.Error())
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrEnv()
	}

	logger := logging.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	serverConfig := api.Config{
		Port:           cfg.API.Port,
		AllowedOrigins: cfg.API.AllowedOrigins,
	}
	if *port != 0 {
		serverConfig.Port = *port
	}

	server := api.NewServer(serverConfig, store, logger)
	if err := server.Run(); err != nil {
		logger.Error("API server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
