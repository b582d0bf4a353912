package visitors

import (
	"github.com/bawdo/sqlterm/internal/quoting"
	"github.com/bawdo/sqlterm/nodes"
)

// ANSIVisitor generates the canonical rendering of an expression.
// Identifiers are quoted with double quotes: "table"."column".
//
// A simple CASE renders without its operand, and date parts render as
// DatePart.<name>. Use a dialect visitor for SQL that must execute.
type ANSIVisitor struct {
	*baseVisitor
}

// NewANSIVisitor creates an ANSIVisitor ready for use.
func NewANSIVisitor(opts ...Option) *ANSIVisitor {
	v := &ANSIVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		quoteIdent:   quoting.DoubleQuote,
		escapeString: quoting.EscapeStandard,
		placeholder:  func(_ int) string { return "?" },
	}
	v.applyOptions(opts)
	return v
}

func (v *ANSIVisitor) VisitCase(n *nodes.CaseNode) string {
	return v.renderCase(n, false)
}

func (v *ANSIVisitor) VisitDatePart(n *nodes.DatePartNode) string {
	return "DatePart." + n.Part.String()
}
