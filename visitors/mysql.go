package visitors

import (
	"github.com/bawdo/sqlterm/internal/quoting"
	"github.com/bawdo/sqlterm/nodes"
)

// MySQLVisitor generates MySQL-dialect SQL.
// Identifiers are quoted with backticks: `table`.`column`.
type MySQLVisitor struct {
	*baseVisitor
}

// NewMySQLVisitor creates a MySQLVisitor ready for use.
// Pass WithParams() to render literals as ? placeholders.
func NewMySQLVisitor(opts ...Option) *MySQLVisitor {
	v := &MySQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		quoteIdent:   quoting.Backtick,
		escapeString: quoting.EscapeString,
		placeholder:  func(_ int) string { return "?" },
	}
	v.applyOptions(opts)
	return v
}

// VisitMatch renders ILIKE, which MySQL lacks, by lower-casing both sides.
func (v *MySQLVisitor) VisitMatch(n *nodes.MatchNode) string {
	if n.Op == nodes.OpILike {
		return v.lowerMatch(n)
	}
	return v.baseVisitor.VisitMatch(n)
}
