package sqlite

import (
	"context"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// BackupOps implements adapter.BackupOperator for SQLite by shelling out to
// the sqlite3 CLI with an argument array.
type BackupOps struct {
	conn *Connection
}

// Backup dumps the database to destPath via `sqlite3 <file> .dump`. The
// database file path is one argv entry; in-memory databases have no file to
// dump and fail as unsupported.
func (b *BackupOps) Backup(ctx context.Context, destPath string) error {
	path, ok := dbcapabilities.SQLitePath(b.conn.config.DSN)
	if !ok {
		return adapter.NewUnsupportedOperationError(
			dbcapabilities.SQLite,
			"backup",
			"in-memory databases cannot be dumped",
		)
	}

	tool := dbcapabilities.MustGet(dbcapabilities.SQLite).DumpTool
	return common.RunDump(ctx, dbcapabilities.SQLite, tool, []string{path, ".dump"}, destPath)
}
