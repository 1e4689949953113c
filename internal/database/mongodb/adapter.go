// Package mongodb implements the databridge adapter for MongoDB. The
// document paradigm has no SQL grammar or table schema, so query, schema
// and backup operations surface as unsupported; connection lifecycle and
// metadata work normally.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func init() {
	adapter.Register(NewAdapter())
}

// Adapter implements adapter.DatabaseAdapter for MongoDB.
type Adapter struct{}

// NewAdapter creates a new MongoDB adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the database type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.MongoDB
}

// Capabilities returns the capability metadata for MongoDB.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.MongoDB)
}

// Connect establishes a client for the given mongodb:// URI and verifies it
// with a ping before handing it out.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(config.DSN))
	if err != nil {
		return nil, adapter.NewConnectionError(dbcapabilities.MongoDB, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, adapter.NewConnectionError(dbcapabilities.MongoDB, err)
	}

	return newConnection(config, a, client), nil
}
