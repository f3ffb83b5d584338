package config

import (
	"os"

	"go.uber.org/zap"
)

// InitLogger builds a zap logger for the current APP_ENV and installs it as
// the process-global logger.
func InitLogger() *zap.Logger {
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
