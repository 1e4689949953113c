// Package common holds the SQL execution plumbing shared by the relational
// adapters (PostgreSQL, MySQL, SQLite): named-parameter binding, row
// normalization and the read/write execution split.
package common

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// BindNamed rewrites :name placeholders in the statement to the driver's
// placeholder style and produces the positional argument list. Parameters
// are always bound through the driver; the statement text is never touched
// beyond placeholder rewriting.
func BindNamed(bindType int, statement string, params map[string]any) (string, []any, error) {
	if params == nil {
		params = map[string]any{}
	}
	bound, args, err := sqlx.Named(statement, params)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(bindType, bound), args, nil
}

// NormalizeRows drains the rows into the uniform read envelope, preserving
// driver column order. []byte cells (MySQL text columns) become strings.
func NormalizeRows(rows *sqlx.Rows) (*adapter.QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return adapter.NewReadResult(columns, out), nil
}

// ExecuteStatement is the shared Execute implementation for the relational
// adapters. Reads fetch all rows eagerly; writes report the affected row
// count. database/sql pools auto-commit each statement, which satisfies the
// commit-on-write contract.
func ExecuteStatement(ctx context.Context, db *sqlx.DB, id dbcapabilities.DatabaseID, bindType int, statement string, params map[string]any) (*adapter.QueryResult, error) {
	bound, args, err := BindNamed(bindType, statement, params)
	if err != nil {
		return nil, adapter.WrapQuery(id, "bind parameters", err)
	}

	if adapter.IsReadStatement(statement) {
		rows, err := db.QueryxContext(ctx, bound, args...)
		if err != nil {
			return nil, adapter.WrapQuery(id, "execute query", err)
		}
		defer rows.Close()

		res, err := NormalizeRows(rows)
		if err != nil {
			return nil, adapter.WrapQuery(id, "scan rows", err)
		}
		return res, nil
	}

	res, err := db.ExecContext(ctx, bound, args...)
	if err != nil {
		return nil, adapter.WrapQuery(id, "execute statement", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report a count for DDL; the write still
		// succeeded.
		affected = 0
	}
	return adapter.NewWriteResult(affected), nil
}

// QueryRows runs a fixed, trusted statement (stats and introspection text
// from the dialect tables) and normalizes the result.
func QueryRows(ctx context.Context, db *sqlx.DB, id dbcapabilities.DatabaseID, statement string, args ...any) (*adapter.QueryResult, error) {
	rows, err := db.QueryxContext(ctx, statement, args...)
	if err != nil {
		return nil, adapter.WrapQuery(id, "execute query", err)
	}
	defer rows.Close()

	res, err := NormalizeRows(rows)
	if err != nil {
		return nil, adapter.WrapQuery(id, "scan rows", err)
	}
	return res, nil
}

// ConfigurePool applies the pool limits every relational adapter uses.
func ConfigurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
}
