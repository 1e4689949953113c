package mongodb

import (
	"context"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// Connection is an active MongoDB client. The driver's client is safe for
// concurrent use, so no extra serialization is applied.
type Connection struct {
	config    adapter.ConnectionConfig
	adapter   adapter.DatabaseAdapter
	client    *mongo.Client
	connected int32
}

func newConnection(config adapter.ConnectionConfig, a adapter.DatabaseAdapter, client *mongo.Client) *Connection {
	return &Connection{config: config, adapter: a, client: client, connected: 1}
}

func (c *Connection) Name() string {
	return c.config.Name
}

func (c *Connection) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.MongoDB
}

func (c *Connection) IsConnected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, nil); err != nil {
		return adapter.WrapQuery(dbcapabilities.MongoDB, "ping", err)
	}
	return nil
}

func (c *Connection) Close() error {
	atomic.StoreInt32(&c.connected, 0)
	return c.client.Disconnect(context.Background())
}

func (c *Connection) QueryOperations() adapter.QueryOperator {
	return adapter.NewUnsupportedQueryOperator(dbcapabilities.MongoDB)
}

func (c *Connection) SchemaOperations() adapter.SchemaOperator {
	return adapter.NewUnsupportedSchemaOperator(dbcapabilities.MongoDB)
}

func (c *Connection) MetadataOperations() adapter.MetadataOperator {
	return &MetadataOps{conn: c}
}

func (c *Connection) BackupOperations() adapter.BackupOperator {
	return adapter.NewUnsupportedBackupOperator(dbcapabilities.MongoDB)
}

func (c *Connection) Config() adapter.ConnectionConfig {
	return c.config
}

func (c *Connection) Adapter() adapter.DatabaseAdapter {
	return c.adapter
}

// MetadataOps implements adapter.MetadataOperator for MongoDB.
type MetadataOps struct {
	conn *Connection
}

// Version returns the MongoDB server version from buildInfo.
func (m *MetadataOps) Version(ctx context.Context) (string, error) {
	var result struct {
		Version string `bson:"version"`
	}
	cmd := bson.D{{Key: "buildInfo", Value: 1}}
	if err := m.conn.client.Database("admin").RunCommand(ctx, cmd).Decode(&result); err != nil {
		return "", adapter.WrapQuery(dbcapabilities.MongoDB, "get version", err)
	}
	return result.Version, nil
}

// Stats is not available: the statistics queries are SQL-dialect specific.
func (m *MetadataOps) Stats(ctx context.Context) (*adapter.QueryResult, error) {
	return nil, adapter.NewUnsupportedOperationError(
		dbcapabilities.MongoDB,
		"performance stats",
		"no statistics query defined for document stores",
	)
}
