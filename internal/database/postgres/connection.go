package postgres

import (
	"context"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// Connection is an active PostgreSQL connection pool.
type Connection struct {
	config    adapter.ConnectionConfig
	adapter   adapter.DatabaseAdapter
	db        *sqlx.DB
	connected int32
}

func newConnection(config adapter.ConnectionConfig, a adapter.DatabaseAdapter, db *sqlx.DB) *Connection {
	return &Connection{config: config, adapter: a, db: db, connected: 1}
}

func (c *Connection) Name() string {
	return c.config.Name
}

func (c *Connection) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.PostgreSQL
}

func (c *Connection) IsConnected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return adapter.WrapQuery(dbcapabilities.PostgreSQL, "ping", err)
	}
	return nil
}

func (c *Connection) Close() error {
	atomic.StoreInt32(&c.connected, 0)
	return c.db.Close()
}

func (c *Connection) QueryOperations() adapter.QueryOperator {
	return &QueryOps{conn: c}
}

func (c *Connection) SchemaOperations() adapter.SchemaOperator {
	return &SchemaOps{conn: c}
}

func (c *Connection) MetadataOperations() adapter.MetadataOperator {
	return &MetadataOps{conn: c}
}

func (c *Connection) BackupOperations() adapter.BackupOperator {
	return &BackupOps{conn: c}
}

func (c *Connection) Config() adapter.ConnectionConfig {
	return c.config
}

func (c *Connection) Adapter() adapter.DatabaseAdapter {
	return c.adapter
}
