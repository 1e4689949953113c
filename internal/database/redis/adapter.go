// Package redis implements the databridge adapter for Redis. The key-value
// paradigm has no SQL grammar or table schema, so query, schema and backup
// operations surface as unsupported; connection lifecycle and metadata work
// normally.
package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func init() {
	adapter.Register(NewAdapter())
}

// Adapter implements adapter.DatabaseAdapter for Redis.
type Adapter struct{}

// NewAdapter creates a new Redis adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the database type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Redis
}

// Capabilities returns the capability metadata for Redis.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.Redis)
}

// Connect establishes a client for the given redis:// URL and verifies it
// with a ping before handing it out.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	opts, err := goredis.ParseURL(config.DSN)
	if err != nil {
		return nil, adapter.NewConnectionError(dbcapabilities.Redis, err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, adapter.NewConnectionError(dbcapabilities.Redis, err)
	}

	return newConnection(config, a, client), nil
}
