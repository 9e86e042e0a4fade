// Package pattern builds LIKE patterns from user input.
package pattern

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains returns a pattern matching any text containing s. Wildcards in s
// are escaped with a backslash, the default LIKE escape character of
// PostgreSQL, so they match themselves.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
