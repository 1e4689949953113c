package sqlite

import (
	"context"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// MetadataOps implements adapter.MetadataOperator for SQLite.
type MetadataOps struct {
	conn *Connection
}

// Version returns the SQLite library version string.
func (m *MetadataOps) Version(ctx context.Context) (string, error) {
	var version string
	if err := m.conn.db.GetContext(ctx, &version, "SELECT sqlite_version()"); err != nil {
		return "", adapter.WrapQuery(dbcapabilities.SQLite, "get version", err)
	}
	return version, nil
}

// Stats is not available: SQLite has no server-side statistics views.
func (m *MetadataOps) Stats(ctx context.Context) (*adapter.QueryResult, error) {
	return nil, adapter.NewUnsupportedOperationError(
		dbcapabilities.SQLite,
		"performance stats",
		"no statistics query defined for this dialect",
	)
}
