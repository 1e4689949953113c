package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/databridge-io/databridge/internal/database/common"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// QueryOps implements adapter.QueryOperator for PostgreSQL.
type QueryOps struct {
	conn *Connection
}

// Execute runs one statement with :name parameters rebound to $n
// placeholders.
func (q *QueryOps) Execute(ctx context.Context, statement string, params map[string]any) (*adapter.QueryResult, error) {
	return common.ExecuteStatement(ctx, q.conn.db, dbcapabilities.PostgreSQL, sqlx.DOLLAR, statement, params)
}
