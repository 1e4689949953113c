package mysql

import (
	"context"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// SchemaOps implements adapter.SchemaOperator for MySQL. Discovery is
// scoped to the database named in the DSN via DATABASE().
type SchemaOps struct {
	conn *Connection
}

const listTablesQuery = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
ORDER BY table_name`

const columnsQuery = `
SELECT table_name, column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = DATABASE()
ORDER BY table_name, ordinal_position`

const indexesQuery = `
SELECT table_name, index_name, column_name
FROM information_schema.statistics
WHERE table_schema = DATABASE()
ORDER BY table_name, index_name, seq_in_index`

const foreignKeysQuery = `
SELECT table_name, column_name, referenced_table_name AS ref_table, referenced_column_name AS ref_column
FROM information_schema.key_column_usage
WHERE table_schema = DATABASE() AND referenced_table_name IS NOT NULL
ORDER BY table_name, ordinal_position`

// ListTables returns the names of all base tables in the current database.
func (s *SchemaOps) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := s.conn.db.SelectContext(ctx, &tables, listTablesQuery); err != nil {
		return nil, adapter.WrapQuery(dbcapabilities.MySQL, "list tables", err)
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
	for _, t := range tables {
		info[t] = adapter.TableSchema{
			Columns:     []adapter.ColumnInfo{},
			Indexes:     []adapter.IndexInfo{},
			ForeignKeys: []adapter.ForeignKeyInfo{},
		}
	}

	var columns []struct {
		TableName  string `db:"table_name"`
		ColumnName string `db:"column_name"`
		DataType   string `db:"data_type"`
		IsNullable string `db:"is_nullable"`
	}
	if err := s.conn.db.SelectContext(ctx, &columns, columnsQuery); err != nil {
		return nil, adapter.WrapQuery(dbcapabilities.MySQL, "discover columns", err)
	}
	for _, col := range columns {
		ts, ok := info[col.TableName]
		if !ok {
			continue
		}
		ts.Columns = append(ts.Columns, adapter.ColumnInfo{
			Name:     col.ColumnName,
			Type:     col.DataType,
			Nullable: col.IsNullable == "YES",
		})
		info[col.TableName] = ts
	}

	var indexes []struct {
		TableName  string `db:"table_name"`
		IndexName  string `db:"index_name"`
		ColumnName string `db:"column_name"`
	}
	if err := s.conn.db.SelectContext(ctx, &indexes, indexesQuery); err != nil {
		return nil, adapter.WrapQuery(dbcapabilities.MySQL, "discover indexes", err)
	}
	for _, idx := range indexes {
		ts, ok := info[idx.TableName]
		if !ok {
			continue
		}
		if n := len(ts.Indexes); n > 0 && ts.Indexes[n-1].Name == idx.IndexName {
			ts.Indexes[n-1].Columns = append(ts.Indexes[n-1].Columns, idx.ColumnName)
		} else {
			ts.Indexes = append(ts.Indexes, adapter.IndexInfo{
				Name:    idx.IndexName,
				Columns: []string{idx.ColumnName},
			})
		}
		info[idx.TableName] = ts
	}

	var fks []struct {
		TableName  string `db:"table_name"`
		ColumnName string `db:"column_name"`
		RefTable   string `db:"ref_table"`
		RefColumn  string `db:"ref_column"`
	}
	if err := s.conn.db.SelectContext(ctx, &fks, foreignKeysQuery); err != nil {
		return nil, adapter.WrapQuery(dbcapabilities.MySQL, "discover foreign keys", err)
	}
	for _, fk := range fks {
		ts, ok := info[fk.TableName]
		if !ok {
			continue
		}
		ts.ForeignKeys = append(ts.ForeignKeys, adapter.ForeignKeyInfo{
			Column:    fk.ColumnName,
			RefTable:  fk.RefTable,
			RefColumn: fk.RefColumn,
		})
		info[fk.TableName] = ts
	}

	return info, nil
}
