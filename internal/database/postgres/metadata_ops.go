package postgres

import (
	"context"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// MetadataOps implements adapter.MetadataOperator for PostgreSQL.
type MetadataOps struct {
	conn *Connection
}

// statsQuery is the fixed per-table activity snapshot for PostgreSQL.
const statsQuery = `
SELECT
    schemaname AS schema_name,
    relname AS table_name,
    n_tup_ins AS inserts,
    n_tup_upd AS updates,
    n_tup_del AS deletes,
    n_live_tup AS live_tuples,
    n_dead_tup AS dead_tuples
FROM pg_stat_user_tables
ORDER BY schemaname, relname`

// Version returns the PostgreSQL server version string.
func (m *MetadataOps) Version(ctx context.Context) (string, error) {
	var version string
	if err := m.conn.db.GetContext(ctx, &version, "SELECT version()"); err != nil {
		return "", adapter.WrapQuery(dbcapabilities.PostgreSQL, "get version", err)
	}
	return version, nil
}

// Stats returns per-table tuple activity from pg_stat_user_tables.
func (m *MetadataOps) Stats(ctx context.Context) (*adapter.QueryResult, error) {
	return common.QueryRows(ctx, m.conn.db, dbcapabilities.PostgreSQL, statsQuery)
}
