package mysql

import (
	"context"
	"net"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// BackupOps implements adapter.BackupOperator for MySQL by shelling out to
// mysqldump with an argument array.
type BackupOps struct {
	conn *Connection
}

// Backup dumps the database to destPath. The DSN is parsed with the
// driver's own parser and every derived value travels as its own argv
// entry; nothing is interpolated into a shell string.
func (b *BackupOps) Backup(ctx context.Context, destPath string) error {
	cfg, err := mysqldriver.ParseDSN(b.conn.config.DSN)
	if err != nil {
		return adapter.NewInvalidInputError("dsn", "cannot parse MySQL DSN for backup: "+err.Error())
	}

	host, port := cfg.Addr, ""
	if h, p, splitErr := net.SplitHostPort(cfg.Addr); splitErr == nil {
		host, port = h, p
	}

	args := []string{"--host", host}
	if port != "" {
		args = append(args, "--port", port)
	}
	if cfg.User != "" {
		args = append(args, "--user", cfg.User)
	}
	if cfg.Passwd != "" {
		args = append(args, "--password="+cfg.Passwd)
	}
	args = append(args, cfg.DBName)

	tool := dbcapabilities.MustGet(dbcapabilities.MySQL).DumpTool
	return common.RunDump(ctx, dbcapabilities.MySQL, tool, args, destPath)
}
