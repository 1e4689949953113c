// Package mysql implements the databridge adapter for MySQL on top of
// go-sql-driver/mysql.
package mysql

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func init() {
	adapter.Register(NewAdapter())
}

// Adapter implements adapter.DatabaseAdapter for MySQL.
type Adapter struct{}

// NewAdapter creates a new MySQL adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the database type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.MySQL
}

// Capabilities returns the capability metadata for MySQL.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.MySQL)
}

// Connect establishes a connection pool to a MySQL database. The DSN uses
// go-sql-driver syntax: user:password@tcp(host:port)/dbname.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	db, err := sqlx.Open("mysql", config.DSN)
	if err != nil {
		return nil, adapter.NewConnectionError(dbcapabilities.MySQL, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, adapter.NewConnectionError(dbcapabilities.MySQL, err)
	}
	common.ConfigurePool(db.DB)

	return newConnection(config, a, db), nil
}
