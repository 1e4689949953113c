package adapter

import (
	"context"

	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// UnsupportedQueryOperator is a nil object pattern for databases that don't
// execute parameterized SQL statements.
type UnsupportedQueryOperator struct {
	id dbcapabilities.DatabaseID
}

func (u *UnsupportedQueryOperator) Execute(ctx context.Context, statement string, params map[string]any) (*QueryResult, error) {
	return nil, NewUnsupportedOperationError(u.id, "query execution", "parameterized SQL is only available for relational databases")
}

// NewUnsupportedQueryOperator creates a new unsupported query operator.
func NewUnsupportedQueryOperator(id dbcapabilities.DatabaseID) QueryOperator {
	return &UnsupportedQueryOperator{id: id}
}

// UnsupportedSchemaOperator is a nil object pattern for databases without
// introspectable table schemas.
type UnsupportedSchemaOperator struct {
	id dbcapabilities.DatabaseID
}

func (u *UnsupportedSchemaOperator) DiscoverSchema(ctx context.Context) (SchemaInfo, error) {
	return nil, NewUnsupportedOperationError(u.id, "schema discovery", "")
}

func (u *UnsupportedSchemaOperator) ListTables(ctx context.Context) ([]string, error) {
	return nil, NewUnsupportedOperationError(u.id, "list tables", "")
}

// NewUnsupportedSchemaOperator creates a new unsupported schema operator.
func NewUnsupportedSchemaOperator(id dbcapabilities.DatabaseID) SchemaOperator {
	return &UnsupportedSchemaOperator{id: id}
}

// UnsupportedBackupOperator is a nil object pattern for databases without a
// configured dump tool.
type UnsupportedBackupOperator struct {
	id dbcapabilities.DatabaseID
}

func (u *UnsupportedBackupOperator) Backup(ctx context.Context, destPath string) error {
	return NewUnsupportedOperationError(u.id, "backup", "no dump tool configured for this database")
}

// NewUnsupportedBackupOperator creates a new unsupported backup operator.
func NewUnsupportedBackupOperator(id dbcapabilities.DatabaseID) BackupOperator {
	return &UnsupportedBackupOperator{id: id}
}

// IsUnsupportedOperator checks if an operator is one of the unsupported
// placeholders.
func IsUnsupportedOperator(op interface{}) bool {
	switch op.(type) {
	case *UnsupportedQueryOperator, *UnsupportedSchemaOperator, *UnsupportedBackupOperator:
		return true
	default:
		return false
	}
}
