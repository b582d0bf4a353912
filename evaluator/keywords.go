package evaluator

import (
	"sort"
	"strings"
)

// reserved words recognised by the lexer. Date-part and type names are
// handled by the parser instead, so foo.year and "varchar" stay columns.
var keywords = map[string]bool{
	"AND":       true,
	"OR":        true,
	"NOT":       true,
	"LIKE":      true,
	"ILIKE":     true,
	"IN":        true,
	"IS":        true,
	"BETWEEN":   true,
	"CASE":      true,
	"WHEN":      true,
	"THEN":      true,
	"ELSE":      true,
	"END":       true,
	"CAST":      true,
	"AS":        true,
	"OVER":      true,
	"PARTITION": true,
	"ORDER":     true,
	"BY":        true,
	"ASC":       true,
	"DESC":      true,
	"NULL":      true,
	"TRUE":      true,
	"FALSE":     true,
	"IGNORE":    true,
	"NULLS":     true,
	"DISTINCT":  true,
}

// lookupKeyword returns the canonical keyword for word, if it is reserved.
func lookupKeyword(word string) (string, bool) {
	upper := strings.ToUpper(word)
	return upper, keywords[upper]
}

// Keywords returns the reserved words in alphabetical order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}
