package redis

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	goredis "github.com/redis/go-redis/v9"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// Connection is an active Redis client. The driver's client is safe for
// concurrent use, so no extra serialization is applied.
type Connection struct {
	config    adapter.ConnectionConfig
	adapter   adapter.DatabaseAdapter
	client    *goredis.Client
	connected int32
}

func newConnection(config adapter.ConnectionConfig, a adapter.DatabaseAdapter, client *goredis.Client) *Connection {
	return &Connection{config: config, adapter: a, client: client, connected: 1}
}

func (c *Connection) Name() string {
	return c.config.Name
}

func (c *Connection) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.Redis
}

func (c *Connection) IsConnected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return adapter.WrapQuery(dbcapabilities.Redis, "ping", err)
	}
	return nil
}

func (c *Connection) Close() error {
	atomic.StoreInt32(&c.connected, 0)
	return c.client.Close()
}

func (c *Connection) QueryOperations() adapter.QueryOperator {
	return adapter.NewUnsupportedQueryOperator(dbcapabilities.Redis)
}

func (c *Connection) SchemaOperations() adapter.SchemaOperator {
	return adapter.NewUnsupportedSchemaOperator(dbcapabilities.Redis)
}

func (c *Connection) MetadataOperations() adapter.MetadataOperator {
	return &MetadataOps{conn: c}
}

func (c *Connection) BackupOperations() adapter.BackupOperator {
	return adapter.NewUnsupportedBackupOperator(dbcapabilities.Redis)
}

func (c *Connection) Config() adapter.ConnectionConfig {
	return c.config
}

func (c *Connection) Adapter() adapter.DatabaseAdapter {
	return c.adapter
}

// MetadataOps implements adapter.MetadataOperator for Redis.
type MetadataOps struct {
	conn *Connection
}

// Version returns the redis_version field from INFO server.
func (m *MetadataOps) Version(ctx context.Context) (string, error) {
	info, err := m.conn.client.Info(ctx, "server").Result()
	if err != nil {
		return "", adapter.WrapQuery(dbcapabilities.Redis, "get version", err)
	}
	for _, line := range strings.Split(info, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "redis_version:"); ok {
			return v, nil
		}
	}
	return "", adapter.WrapQuery(dbcapabilities.Redis, "get version", errors.New("redis_version not present in INFO output"))
}

// Stats is not available: the statistics queries are SQL-dialect specific.
func (m *MetadataOps) Stats(ctx context.Context) (*adapter.QueryResult, error) {
	return nil, adapter.NewUnsupportedOperationError(
		dbcapabilities.Redis,
		"performance stats",
		"no statistics query defined for key-value stores",
	)
}
