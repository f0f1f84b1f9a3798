package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName               = "clinic-portal"
	defaultConnectTimeout = 10 * time.Second
	defaultOpTimeout      = 5 * time.Second
)

// Config holds the connection settings for the portal database.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Connect dials MongoDB, pings the primary and returns the client together
// with the portal database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}

	return client, client.Database(cfg.Database), nil
}

// Option configures a repository.
type Option func(*collection)

// WithOpTimeout sets the deadline applied to every call a repository makes.
// Non-positive values keep the default.
func WithOpTimeout(d time.Duration) Option {
	return func(c *collection) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// collection is embedded by the repositories. Every call runs under its own
// deadline, independent of the caller's context.
type collection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func newCollection(db *mongo.Database, name string, opts []Option) collection {
	c := collection{coll: db.Collection(name), timeout: defaultOpTimeout}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c collection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
