// Package sqlite implements the databridge adapter for SQLite using the
// CGo-free modernc.org/sqlite driver. The DSN is a file path, a file: URI
// or :memory:.
package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func init() {
	adapter.Register(NewAdapter())
}

// Adapter implements adapter.DatabaseAdapter for SQLite.
type Adapter struct{}

// NewAdapter creates a new SQLite adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the database type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.SQLite
}

// Capabilities returns the capability metadata for SQLite.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.SQLite)
}

// Connect opens the SQLite database and verifies it with a ping. SQLite
// serializes writers internally, so a single pool connection avoids
// database-locked errors under concurrent use.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	db, err := sqlx.Open("sqlite", config.DSN)
	if err != nil {
		return nil, adapter.NewConnectionError(dbcapabilities.SQLite, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, adapter.NewConnectionError(dbcapabilities.SQLite, err)
	}

	return newConnection(config, a, db), nil
}
