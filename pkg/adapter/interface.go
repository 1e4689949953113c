package adapter

import (
	"context"

	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// DatabaseAdapter represents a database technology adapter. Each supported
// database must implement this interface and register itself at init time.
type DatabaseAdapter interface {
	// Type returns the canonical database type identifier.
	Type() dbcapabilities.DatabaseID

	// Capabilities returns the capability metadata for this database type.
	Capabilities() dbcapabilities.Capability

	// Connect establishes a connection to a specific database. The returned
	// Connection owns the driver handle until Close is called.
	Connect(ctx context.Context, config ConnectionConfig) (Connection, error)
}

// Connection represents an active connection to a specific database. The
// operator accessors never return nil: categories a database does not
// support return the shared unsupported operators, whose every method fails
// with ErrUnsupportedOperation.
type Connection interface {
	// Identity and status
	Name() string
	Type() dbcapabilities.DatabaseID
	IsConnected() bool

	// Lifecycle management
	Ping(ctx context.Context) error
	Close() error

	// Operation categories
	QueryOperations() QueryOperator
	SchemaOperations() SchemaOperator
	MetadataOperations() MetadataOperator
	BackupOperations() BackupOperator

	// Configuration
	Config() ConnectionConfig
	Adapter() DatabaseAdapter
}

// QueryOperator executes client-submitted statements with bound parameters.
// Only SQL-speaking databases implement this.
type QueryOperator interface {
	// Execute runs one statement. Parameters are referenced as :name in
	// the statement and bound through the driver, never interpolated.
	// Statements with a SELECT prefix (case-insensitive, surrounding
	// whitespace ignored) are classified as reads and fetch all rows
	// eagerly; everything else is classified as a write and reports the
	// affected row count.
	Execute(ctx context.Context, statement string, params map[string]any) (*QueryResult, error)
}

// SchemaOperator introspects database structure. Relational only.
type SchemaOperator interface {
	// DiscoverSchema returns per-table columns, indexes and foreign keys.
	DiscoverSchema(ctx context.Context) (SchemaInfo, error)

	// ListTables returns the names of all tables in the database.
	ListTables(ctx context.Context) ([]string, error)
}

// MetadataOperator reports server-side metadata. All kinds implement
// Version; Stats exists only for dialects with a defined statistics query.
type MetadataOperator interface {
	// Version returns the server version string.
	Version(ctx context.Context) (string, error)

	// Stats runs the dialect's fixed statistics query and returns it as a
	// normalized read result. Dialects without one fail with
	// ErrUnsupportedOperation.
	Stats(ctx context.Context) (*QueryResult, error)
}

// BackupOperator produces an on-disk dump through the dialect's external
// dump tool.
type BackupOperator interface {
	// Backup writes a dump of the database to destPath. The tool is
	// invoked with an argument array; destPath and the DSN are never
	// passed through a shell.
	Backup(ctx context.Context, destPath string) error
}
