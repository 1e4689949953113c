package dbcapabilities

import (
	"net/url"
	"regexp"
	"strings"
)

// mysqlDSNPattern matches the credential section of a go-sql-driver style
// DSN: user:password@tcp(host:port)/dbname.
var mysqlDSNPattern = regexp.MustCompile(`^([^:@/]+):([^@]*)@`)

// RedactDSN returns a form of the connection string safe for logs: the
// password portion is replaced with "****". Connection strings are otherwise
// treated as opaque and must never be logged in full.
func RedactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}

	// URL-shaped DSNs (postgres://, mongodb://, redis://, ...).
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err == nil && u.User != nil {
			if _, has := u.User.Password(); has {
				u.User = url.UserPassword(u.User.Username(), "****")
				// url.UserPassword escapes the stars; undo that one token.
				return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
			}
		}
		if err == nil {
			return u.String()
		}
	}

	// go-sql-driver style: user:password@tcp(host)/db.
	if m := mysqlDSNPattern.FindStringSubmatch(dsn); m != nil && m[2] != "" {
		return mysqlDSNPattern.ReplaceAllString(dsn, m[1]+":****@")
	}

	return dsn
}

// SQLitePath extracts the on-disk database path from a SQLite DSN, dropping
// an optional file: scheme and query options. It returns ok=false for
// in-memory databases, which cannot be dumped by the external sqlite3 tool.
func SQLitePath(dsn string) (string, bool) {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return "", false
	}
	return path, true
}
