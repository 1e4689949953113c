// Package postgres implements the databridge adapter for PostgreSQL on top
// of pgx's database/sql driver.
package postgres

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func init() {
	adapter.Register(NewAdapter())
}

// Adapter implements adapter.DatabaseAdapter for PostgreSQL.
type Adapter struct{}

// NewAdapter creates a new PostgreSQL adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the database type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.PostgreSQL
}

// Capabilities returns the capability metadata for PostgreSQL.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.PostgreSQL)
}

// Connect establishes a connection pool to a PostgreSQL database and
// verifies it with a ping before handing it out.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	db, err := sqlx.Open("pgx", config.DSN)
	if err != nil {
		return nil, adapter.NewConnectionError(dbcapabilities.PostgreSQL, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, adapter.NewConnectionError(dbcapabilities.PostgreSQL, err)
	}
	common.ConfigurePool(db.DB)

	return newConnection(config, a, db), nil
}
