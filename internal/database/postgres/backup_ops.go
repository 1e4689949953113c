package postgres

import (
	"context"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// BackupOps implements adapter.BackupOperator for PostgreSQL by shelling
// out to pg_dump with an argument array.
type BackupOps struct {
	conn *Connection
}

// Backup dumps the database to destPath. The DSN travels as the value of
// --dbname, a single argv entry the OS never re-interprets.
func (b *BackupOps) Backup(ctx context.Context, destPath string) error {
	tool := dbcapabilities.MustGet(dbcapabilities.PostgreSQL).DumpTool
	args := []string{"--dbname", b.conn.config.DSN}
	return common.RunDump(ctx, dbcapabilities.PostgreSQL, tool, args, destPath)
}

var _ adapter.BackupOperator = (*BackupOps)(nil)
