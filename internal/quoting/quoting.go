// Package quoting provides shared identifier and string quoting utilities.
package quoting

import "strings"

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeStandard escapes a string literal body the ANSI way, by doubling
// single quotes. Backslashes are ordinary characters.
func EscapeStandard(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeString escapes a string literal for MySQL by doubling single quotes
// and escaping backslashes.
//
// SECURITY: This escaping is intended for non-parameterized mode only.
// MySQL with non-default character sets (GBK, SJIS) may have multi-byte
// sequences where a trailing byte coincides with backslash or quote;
// parameterized queries (visitors.WithParams()) avoid this class of attack.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// UnquoteIdent strips the surrounding quote characters from a quoted
// identifier and collapses doubled inner quotes. Text that is not quoted
// with q is returned unchanged.
func UnquoteIdent(s string, q byte) string {
	if len(s) < 2 || s[0] != q || s[len(s)-1] != q {
		return s
	}
	pair := string([]byte{q, q})
	return strings.ReplaceAll(s[1:len(s)-1], pair, string(q))
}
