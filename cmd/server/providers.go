package main

import (
	"log"

	"myapp_backend/internal/config"
	"myapp_backend/internal/platform/logger"

	"go.uber.org/zap"
)

// provideLogger builds the application logger; its cleanup flushes buffered entries.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := l.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
	return l, cleanup, nil
}
