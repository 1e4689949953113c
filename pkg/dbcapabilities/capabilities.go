package dbcapabilities

import "strings"

// DatabaseID is the canonical identifier for a database technology supported
// by databridge. Use these constants to look up capability information.
type DatabaseID string

const (
	// Relational SQL
	PostgreSQL DatabaseID = "postgres"
	MySQL      DatabaseID = "mysql"
	SQLite     DatabaseID = "sqlite"

	// Document
	MongoDB DatabaseID = "mongodb"

	// Key-value
	Redis DatabaseID = "redis"
)

// DataParadigm enumerates the primary data storage paradigms a database
// supports. It is the coarse "kind" the dispatcher branches on.
type DataParadigm string

const (
	ParadigmRelational DataParadigm = "relational"
	ParadigmDocument   DataParadigm = "document"
	ParadigmKeyValue   DataParadigm = "keyvalue"
)

// Capability describes what a database supports in a way the registry and
// dispatcher can consume uniformly.
type Capability struct {
	// Human-friendly vendor or product name, e.g., "PostgreSQL".
	Name string `json:"name"`

	// Canonical ID used across the codebase (see DatabaseID constants).
	ID DatabaseID `json:"id"`

	// Primary data storage paradigm.
	Paradigm DataParadigm `json:"paradigm"`

	// Whether SQL statements with bound parameters can be executed.
	SupportsSQL bool `json:"supportsSQL"`

	// Whether a fixed performance-statistics query is defined for this
	// dialect. SQLite ships no server-side statistics views, so it is
	// relational but has none.
	SupportsStats bool `json:"supportsStats"`

	// Name of the external dump binary used for backups, empty when the
	// database has no supported dump tool. The value is an allow-list
	// entry, never derived from user input.
	DumpTool string `json:"dumpTool,omitempty"`

	// Common aliases (driver names, env labels) that map to this database.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical database ID.
var All = map[DatabaseID]Capability{
	PostgreSQL: {
		Name:          "PostgreSQL",
		ID:            PostgreSQL,
		Paradigm:      ParadigmRelational,
		SupportsSQL:   true,
		SupportsStats: true,
		DumpTool:      "pg_dump",
		Aliases:       []string{"postgresql", "pgsql", "pg"},
	},
	MySQL: {
		Name:          "MySQL",
		ID:            MySQL,
		Paradigm:      ParadigmRelational,
		SupportsSQL:   true,
		SupportsStats: true,
		DumpTool:      "mysqldump",
		Aliases:       []string{"aurora-mysql", "mariadb"},
	},
	SQLite: {
		Name:        "SQLite",
		ID:          SQLite,
		Paradigm:    ParadigmRelational,
		SupportsSQL: true,
		DumpTool:    "sqlite3",
		Aliases:     []string{"sqlite3"},
	},
	MongoDB: {
		Name:     "MongoDB",
		ID:       MongoDB,
		Paradigm: ParadigmDocument,
		Aliases:  []string{"mongo"},
	},
	Redis: {
		Name:     "Redis",
		ID:       Redis,
		Paradigm: ParadigmKeyValue,
		Aliases:  []string{"valkey"},
	},
}

// Get returns the capability for the given database ID.
func Get(id DatabaseID) (Capability, bool) {
	cap, ok := All[id]
	return cap, ok
}

// MustGet returns the capability for the given database ID and panics if the
// ID is unknown. Use only with the package constants.
func MustGet(id DatabaseID) Capability {
	cap, ok := All[id]
	if !ok {
		panic("dbcapabilities: unknown database id: " + string(id))
	}
	return cap
}

// ParseID resolves a database name or alias to its canonical ID.
// Matching is case-insensitive.
func ParseID(name string) (DatabaseID, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	if _, ok := All[DatabaseID(needle)]; ok {
		return DatabaseID(needle), true
	}
	for id, cap := range All {
		for _, alias := range cap.Aliases {
			if alias == needle {
				return id, true
			}
		}
	}
	return "", false
}

// IDs returns all canonical database IDs in no particular order.
func IDs() []DatabaseID {
	ids := make([]DatabaseID, 0, len(All))
	for id := range All {
		ids = append(ids, id)
	}
	return ids
}

// IsRelational reports whether the database speaks SQL against tables.
func IsRelational(id DatabaseID) bool {
	cap, ok := All[id]
	return ok && cap.Paradigm == ParadigmRelational
}
