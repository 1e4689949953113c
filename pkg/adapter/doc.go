// Package adapter defines the unified interface for all database adapters
// and the normalized result shapes they produce. Each supported database
// (PostgreSQL, MySQL, SQLite, MongoDB, Redis) implements DatabaseAdapter and
// registers itself at init time; the connection registry resolves adapters
// through this package and never branches on database name strings.
//
// Operation categories a database does not support are exposed through the
// shared unsupported operators, so callers always receive a typed
// ErrUnsupportedOperation instead of a nil operator.
package adapter
