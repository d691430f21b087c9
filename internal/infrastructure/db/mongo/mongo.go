package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "digital_health_record"
)

// Config captures the settings for the credential store connection.
type Config struct {
	URI string
	// Database overrides the database named in the URI path. When both are
	// empty defaultDatabase is used.
	Database string
	Timeout  time.Duration
}

// DatabaseName resolves which database the store lives in.
func (c Config) DatabaseName() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	cs, err := connstring.ParseAndValidate(c.URI)
	if err != nil {
		return "", fmt.Errorf("mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return defaultDatabase, nil
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	name, err := cfg.DatabaseName()
	if err != nil {
		return nil, nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(name), nil
}
