package sqlite

import (
	"context"
	"strings"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// SchemaOps implements adapter.SchemaOperator for SQLite using the PRAGMA
// introspection interface.
type SchemaOps struct {
	conn *Connection
}

const listTablesQuery = `
SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`

// quoteIdent quotes an identifier for interpolation into a PRAGMA
// statement, which cannot take bound parameters. The names themselves come
// from sqlite_master, not from the caller.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ListTables returns the names of all user tables.
func (s *SchemaOps) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := s.conn.db.SelectContext(ctx, &tables, listTablesQuery); err != nil {
		return nil, adapter.WrapQuery(dbcapabilities.SQLite, "list tables", err)
	}
	return tables, nil
}

// DiscoverSchema introspects columns, indexes and foreign keys per table.
func (s *SchemaOps) DiscoverSchema(ctx context.Context) (adapter.SchemaInfo, error) {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	info := adapter.SchemaInfo{}
	for _, table := range tables {
		ts := adapter.TableSchema{
			Columns:     []adapter.ColumnInfo{},
			Indexes:     []adapter.IndexInfo{},
			ForeignKeys: []adapter.ForeignKeyInfo{},
		}

		var columns []struct {
			CID     int     `db:"cid"`
			Name    string  `db:"name"`
			Type    string  `db:"type"`
			NotNull int     `db:"notnull"`
			Default *string `db:"dflt_value"`
			PK      int     `db:"pk"`
		}
		if err := s.conn.db.SelectContext(ctx, &columns, "PRAGMA table_info("+quoteIdent(table)+")"); err != nil {
			return nil, adapter.WrapQuery(dbcapabilities.SQLite, "discover columns", err)
		}
		for _, col := range columns {
			ts.Columns = append(ts.Columns, adapter.ColumnInfo{
				Name:     col.Name,
				Type:     col.Type,
				Nullable: col.NotNull == 0,
			})
		}

		var indexes []struct {
			Seq     int    `db:"seq"`
			Name    string `db:"name"`
			Unique  int    `db:"unique"`
			Origin  string `db:"origin"`
			Partial int    `db:"partial"`
		}
		if err := s.conn.db.SelectContext(ctx, &indexes, "PRAGMA index_list("+quoteIdent(table)+")"); err != nil {
			return nil, adapter.WrapQuery(dbcapabilities.SQLite, "discover indexes", err)
		}
		for _, idx := range indexes {
			var cols []struct {
				SeqNo int     `db:"seqno"`
				CID   int     `db:"cid"`
				Name  *string `db:"name"`
			}
			if err := s.conn.db.SelectContext(ctx, &cols, "PRAGMA index_info("+quoteIdent(idx.Name)+")"); err != nil {
				return nil, adapter.WrapQuery(dbcapabilities.SQLite, "discover index columns", err)
			}
			names := make([]string, 0, len(cols))
			for _, c := range cols {
				if c.Name != nil {
					names = append(names, *c.Name)
				}
			}
			ts.Indexes = append(ts.Indexes, adapter.IndexInfo{Name: idx.Name, Columns: names})
		}

		var fks []struct {
			ID       int    `db:"id"`
			Seq      int    `db:"seq"`
			Table    string `db:"table"`
			From     string `db:"from"`
			To       string `db:"to"`
			OnUpdate string `db:"on_update"`
			OnDelete string `db:"on_delete"`
			Match    string `db:"match"`
		}
		if err := s.conn.db.SelectContext(ctx, &fks, "PRAGMA foreign_key_list("+quoteIdent(table)+")"); err != nil {
			return nil, adapter.WrapQuery(dbcapabilities.SQLite, "discover foreign keys", err)
		}
		for _, fk := range fks {
			ts.ForeignKeys = append(ts.ForeignKeys, adapter.ForeignKeyInfo{
				Column:    fk.From,
				RefTable:  fk.Table,
				RefColumn: fk.To,
			})
		}

		info[table] = ts
	}

	return info, nil
}
