package main

import (
	"github.com/entroverse/entroverse-api/internal/config"
	"github.com/entroverse/entroverse-api/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev, it is noisy in production
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
