package visitors

import (
	"strings"

	"github.com/bawdo/sqlterm/internal/quoting"
	"github.com/bawdo/sqlterm/nodes"
)

// SQLiteVisitor generates SQLite-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column" (ANSI SQL).
type SQLiteVisitor struct {
	*baseVisitor
}

// NewSQLiteVisitor creates a SQLiteVisitor ready for use.
// Pass WithParams() to render literals as ? placeholders.
func NewSQLiteVisitor(opts ...Option) *SQLiteVisitor {
	v := &SQLiteVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		quoteIdent:   quoting.DoubleQuote,
		escapeString: quoting.EscapeStandard,
		placeholder:  func(_ int) string { return "?" },
	}
	v.applyOptions(opts)
	return v
}

func (v *SQLiteVisitor) VisitMatch(n *nodes.MatchNode) string {
	if n.Op == nodes.OpILike {
		return v.lowerMatch(n)
	}
	return v.baseVisitor.VisitMatch(n)
}

// VisitConcat uses the || operator; SQLite has no CONCAT before 3.44.
func (v *SQLiteVisitor) VisitConcat(n *nodes.ConcatNode) string {
	parts := make([]string, len(n.Parts))
	for i, p := range n.Parts {
		parts[i] = p.Accept(v)
	}
	return strings.Join(parts, "||")
}

// VisitMod uses the % operator; SQLite has no MOD function by default.
func (v *SQLiteVisitor) VisitMod(n *nodes.ModNode) string {
	left := n.Left.Accept(v)
	if _, ok := n.Left.(*nodes.InfixNode); ok {
		left = "(" + left + ")"
	}
	right := n.Right.Accept(v)
	if _, ok := n.Right.(*nodes.InfixNode); ok {
		right = "(" + right + ")"
	}
	return left + "%" + right
}
