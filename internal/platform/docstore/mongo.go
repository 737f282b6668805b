// Package docstore holds the process-wide MongoDB handle.
package docstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"myapp_backend/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// Client is a lazily connected, shared MongoDB database handle. The first
// call to Database connects, pings and creates registered indexes; every
// later call reuses the same connection. Safe for concurrent use.
type Client struct {
	uri            string
	dbName         string
	connectTimeout time.Duration
	logger         *zap.Logger

	mu      sync.RWMutex
	indexes map[string][]mongo.IndexModel
	client  *mongo.Client
	db      *mongo.Database
}

// New returns an unconnected Client. No network traffic happens until first use.
func New(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := cfg.MongoConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		uri:            cfg.MongoURI,
		dbName:         cfg.MongoDatabase,
		connectTimeout: timeout,
		logger:         logger.Named("docstore"),
		indexes:        make(map[string][]mongo.IndexModel),
	}
}

// RegisterIndexes records indexes to create on collection when the
// connection is first established. Must be called before first use.
func (c *Client) RegisterIndexes(collection string, models ...mongo.IndexModel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexes[collection] = append(c.indexes[collection], models...)
}

// Database returns the shared database, connecting on first call.
// A failed attempt is not cached; the next call retries.
func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.RLock()
	db := c.db
	c.mu.RUnlock()
	if db != nil {
		return db, nil
	}
	return c.connect(ctx)
}

func (c *Client) connect(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(c.dbName)
	for name, models := range c.indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(connectCtx, models); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}

	c.client = client
	c.db = db
	c.logger.Info("Connected to MongoDB", zap.String("database", c.dbName))
	return db, nil
}

// Collection is a shortcut for Database(ctx).Collection(name).
func (c *Client) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Close disconnects if a connection was ever made.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}
