package app

import (
	"os"

	"github.com/nnmag/storefront/internal/logger"
)

// InitializeLogger configures the global logger from LOG_LEVEL and
// LOG_PRETTY before any other component starts logging.
func InitializeLogger() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	pretty := os.Getenv("LOG_PRETTY") == "true"
	logger.Init(logLevel, pretty)
}
