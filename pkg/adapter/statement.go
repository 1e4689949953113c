package adapter

import "strings"

// IsReadStatement classifies a SQL statement as a read. The rule is a
// case-insensitive SELECT prefix after trimming surrounding whitespace;
// everything else (including WITH ... SELECT) is treated as a write and
// goes through the commit path.
func IsReadStatement(statement string) bool {
	trimmed := strings.TrimSpace(statement)
	if len(trimmed) < len("select") {
		return false
	}
	head := trimmed[:len("select")]
	if !strings.EqualFold(head, "select") {
		return false
	}
	// "selection" is not a SELECT; require a token boundary.
	if len(trimmed) > len("select") {
		next := trimmed[len("select")]
		if next != ' ' && next != '\t' && next != '\n' && next != '\r' && next != '*' && next != '(' {
			return false
		}
	}
	return true
}
