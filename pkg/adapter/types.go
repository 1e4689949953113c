package adapter

import (
	"github.com/goccy/go-json"

	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// ConnectionConfig describes one named backing store. The DSN is opaque
// credential material: log only the Redacted form.
type ConnectionConfig struct {
	// Name is the logical connection name, unique within the registry.
	Name string `json:"name"`

	// DatabaseID is the canonical database technology identifier.
	DatabaseID dbcapabilities.DatabaseID `json:"type"`

	// DSN is the driver-specific connection string.
	DSN string `json:"-"`
}

// Redacted returns the DSN with credentials masked, safe for logging.
func (c ConnectionConfig) Redacted() string {
	return dbcapabilities.RedactDSN(c.DSN)
}

// QueryResult is the normalized envelope every driver result is adapted
// into. Read results carry Columns (ordered), Rows and RowCount; write
// results carry only AffectedRows. Columns is non-nil exactly for reads.
type QueryResult struct {
	Columns      []string         `json:"columns,omitempty"`
	Rows         []map[string]any `json:"rows,omitempty"`
	RowCount     int              `json:"row_count"`
	AffectedRows int64            `json:"affected_rows"`
}

// NewReadResult builds a read-classified result. Columns keeps driver
// order; rows map column name to value.
func NewReadResult(columns []string, rows []map[string]any) *QueryResult {
	if columns == nil {
		columns = []string{}
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return &QueryResult{Columns: columns, Rows: rows, RowCount: len(rows)}
}

// NewWriteResult builds a write-classified result.
func NewWriteResult(affected int64) *QueryResult {
	return &QueryResult{AffectedRows: affected}
}

// IsRead reports whether the result came from a read-classified statement.
func (r *QueryResult) IsRead() bool {
	return r.Columns != nil
}

// MarshalJSON emits the two contract shapes: {columns, rows, row_count} for
// reads and {affected_rows} for writes.
func (r *QueryResult) MarshalJSON() ([]byte, error) {
	if r.IsRead() {
		return json.Marshal(struct {
			Columns  []string         `json:"columns"`
			Rows     []map[string]any `json:"rows"`
			RowCount int              `json:"row_count"`
		}{r.Columns, r.Rows, r.RowCount})
	}
	return json.Marshal(struct {
		AffectedRows int64 `json:"affected_rows"`
	}{r.AffectedRows})
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// IndexInfo describes one index of a table.
type IndexInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// ForeignKeyInfo describes one foreign-key reference of a table.
type ForeignKeyInfo struct {
	Column    string `json:"column"`
	RefTable  string `json:"ref_table"`
	RefColumn string `json:"ref_column"`
}

// TableSchema describes one table: columns in ordinal order, indexes and
// foreign keys in introspection order.
type TableSchema struct {
	Columns     []ColumnInfo     `json:"columns"`
	Indexes     []IndexInfo      `json:"indexes"`
	ForeignKeys []ForeignKeyInfo `json:"foreign_keys"`
}

// SchemaInfo maps table name to its schema.
type SchemaInfo map[string]TableSchema
