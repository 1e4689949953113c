package mysql

import (
	"context"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// MetadataOps implements adapter.MetadataOperator for MySQL.
type MetadataOps struct {
	conn *Connection
}

// statsQuery is the fixed per-table size snapshot for MySQL.
const statsQuery = `
SELECT
    TABLE_SCHEMA AS schema_name,
    TABLE_NAME AS table_name,
    TABLE_ROWS AS row_count,
    DATA_LENGTH AS data_size,
    INDEX_LENGTH AS index_size
FROM information_schema.TABLES
WHERE TABLE_SCHEMA NOT IN ('information_schema', 'mysql', 'performance_schema')
ORDER BY TABLE_SCHEMA, TABLE_NAME`

// Version returns the MySQL server version string.
func (m *MetadataOps) Version(ctx context.Context) (string, error) {
	var version string
	if err := m.conn.db.GetContext(ctx, &version, "SELECT VERSION()"); err != nil {
		return "", adapter.WrapQuery(dbcapabilities.MySQL, "get version", err)
	}
	return version, nil
}

// Stats returns per-table row counts and sizes from information_schema.
func (m *MetadataOps) Stats(ctx context.Context) (*adapter.QueryResult, error) {
	return common.QueryRows(ctx, m.conn.db, dbcapabilities.MySQL, statsQuery)
}
