// Package store opens the persistence backend named by STORE_DRIVER.
package store

import (
	"context"
	"time"

	"myapp_backend/internal/config"
	"myapp_backend/internal/platform/database"
	"myapp_backend/internal/platform/docstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Backend carries exactly one of Mongo or SQL, depending on the driver.
type Backend struct {
	Driver      string
	Mongo       *docstore.Client
	SQL         *gorm.DB
	AutoMigrate bool
}

// New opens the configured backend. The returned cleanup releases it.
// The Mongo backend does not touch the network until first use.
func New(cfg *config.Config, logger *zap.Logger) (*Backend, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMongo {
		client := docstore.New(cfg, logger)
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(ctx); err != nil {
				logger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}
		return &Backend{Driver: cfg.StoreDriver, Mongo: client}, cleanup, nil
	}

	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { database.Close(db, logger) }
	return &Backend{Driver: cfg.StoreDriver, SQL: db, AutoMigrate: cfg.DBAutoMigrate}, cleanup, nil
}

// NewSQL wraps an already opened GORM handle, mostly for tests and tools.
func NewSQL(db *gorm.DB, autoMigrate bool) *Backend {
	return &Backend{Driver: db.Dialector.Name(), SQL: db, AutoMigrate: autoMigrate}
}
