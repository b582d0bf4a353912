// Package visitors renders expression trees as SQL text for a specific
// dialect, or as a Graphviz graph.
package visitors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/sqlterm/nodes"
)

// needsParens reports whether child must be wrapped in parentheses when it
// appears as an operand of parent. Bracketed source text arrives as
// GroupingNode and is never wrapped twice.
func needsParens(parent *nodes.InfixNode, child nodes.Node, right bool) bool {
	switch c := child.(type) {
	case *nodes.InfixNode:
		if c.Op.Precedence() < parent.Op.Precedence() {
			return true
		}
		// a-(b-c) and a/(b*c) keep their grouping.
		return right && c.Op.Precedence() == parent.Op.Precedence() &&
			(parent.Op == nodes.OpMinus || parent.Op == nodes.OpDivide)
	case *nodes.LogicalNode, *nodes.ComparisonNode, *nodes.NotNode:
		return true
	}
	return false
}

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithParams enables parameterized query mode. When enabled, literal values
// are replaced with bind placeholders and collected for separate retrieval.
// NULL is always rendered inline.
func WithParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = true
	}
}

// WithoutParams disables parameterized query mode. This is the default:
// literal values are interpolated into the SQL string with escaping.
func WithoutParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = false
	}
}

// baseVisitor implements the shared SQL generation logic used by all dialects.
// Dialect-specific visitors embed *baseVisitor and set the outer field to
// themselves, enabling correct virtual dispatch through the Visitor interface.
type baseVisitor struct {
	// outer is the concrete dialect visitor. All recursive Accept calls
	// go through outer so that dialect overrides are respected.
	outer nodes.Visitor

	// quoteIdent quotes a SQL identifier (table name, column name).
	quoteIdent func(string) string

	// escapeString escapes the body of a single-quoted string literal.
	escapeString func(string) string

	// parameterize enables bind-parameter mode.
	parameterize bool

	// params accumulates bind parameter values during SQL generation.
	params []any

	// paramIndex tracks the next parameter number (1-based).
	paramIndex int

	// placeholder returns the bind placeholder for a given parameter index.
	// PostgreSQL uses $1, $2; MySQL/SQLite use ?.
	placeholder func(int) string
}

// applyOptions applies functional options to the baseVisitor.
func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Params returns the collected bind parameters from the last SQL generation.
func (b *baseVisitor) Params() []any {
	return b.params
}

// Reset clears collected parameters for reuse.
func (b *baseVisitor) Reset() {
	b.params = nil
	b.paramIndex = 0
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	if n.Alias != "" && n.Alias != n.Name {
		return b.quoteIdent(n.Name) + " AS " + b.quoteIdent(n.Alias)
	}
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	if n.Relation == nil {
		return b.quoteIdent(n.Name)
	}
	return b.quoteIdent(n.Qualifier()) + "." + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitStar(_ *nodes.StarNode) string {
	return "*"
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return b.literalToSQL(n.Value)
}

func (b *baseVisitor) literalToSQL(val any) string {
	// nil always renders as NULL keyword, never parameterized.
	if val == nil {
		return "NULL"
	}

	// In parameterize mode, emit a placeholder and collect the value.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, val)
		return b.placeholder(b.paramIndex)
	}

	switch v := val.(type) {
	case string:
		return "'" + b.escapeString(v) + "'"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	default:
		// Hand-built nodes may hold a Go int or float32; widen and retry.
		if lit, ok := nodes.Literal(v).(*nodes.LiteralNode); ok {
			return b.literalToSQL(lit.Value)
		}
		panic(fmt.Sprintf("sqlterm: unsupported literal type %T", v))
	}
}

// formatFloat renders v in plain decimal notation, always keeping a
// fractional part so 1.0 does not read back as an integer.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func (b *baseVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	return "(" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitNot(n *nodes.NotNode) string {
	expr := n.Expr.Accept(b.outer)
	if _, ok := n.Expr.(*nodes.LogicalNode); ok {
		expr = "(" + expr + ")"
	}
	return "NOT " + expr
}

func (b *baseVisitor) VisitLogical(n *nodes.LogicalNode) string {
	left := b.logicalOperand(n, n.Left)
	right := b.logicalOperand(n, n.Right)
	if n.Op == nodes.OpOr {
		return left + " OR " + right
	}
	return left + " AND " + right
}

// logicalOperand renders an operand of n, bracketing an OR nested in an AND.
func (b *baseVisitor) logicalOperand(n *nodes.LogicalNode, operand nodes.Node) string {
	sql := operand.Accept(b.outer)
	if inner, ok := operand.(*nodes.LogicalNode); ok && n.Op == nodes.OpAnd && inner.Op == nodes.OpOr {
		return "(" + sql + ")"
	}
	return sql
}

func (b *baseVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	return n.Left.Accept(b.outer) + n.Op.Symbol() + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitMatch(n *nodes.MatchNode) string {
	keyword := "LIKE"
	if n.Op == nodes.OpILike {
		keyword = "ILIKE"
	}
	if n.Negate {
		keyword = "NOT " + keyword
	}
	return n.Left.Accept(b.outer) + " " + keyword + " " + n.Pattern.Accept(b.outer)
}

// lowerMatch renders ILIKE for dialects without it as LOWER(l) LIKE LOWER(r).
func (b *baseVisitor) lowerMatch(n *nodes.MatchNode) string {
	keyword := "LIKE"
	if n.Negate {
		keyword = "NOT LIKE"
	}
	return "LOWER(" + n.Left.Accept(b.outer) + ") " + keyword + " LOWER(" + n.Pattern.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitNullTest(n *nodes.NullTestNode) string {
	return n.Expr.Accept(b.outer) + " IS NULL"
}

func (b *baseVisitor) VisitIn(n *nodes.InNode) string {
	keyword := " IN "
	if n.Negate {
		keyword = " NOT IN "
	}
	return n.Expr.Accept(b.outer) + keyword + "(" + b.joinNodes(n.Vals, ",") + ")"
}

func (b *baseVisitor) VisitBetween(n *nodes.BetweenNode) string {
	return n.Expr.Accept(b.outer) + " BETWEEN " + n.Low.Accept(b.outer) + " AND " + n.High.Accept(b.outer)
}

func (b *baseVisitor) VisitConcat(n *nodes.ConcatNode) string {
	return "CONCAT(" + b.joinNodes(n.Parts, ",") + ")"
}

func (b *baseVisitor) VisitInfix(n *nodes.InfixNode) string {
	left := n.Left.Accept(b.outer)
	if needsParens(n, n.Left, false) {
		left = "(" + left + ")"
	}
	right := n.Right.Accept(b.outer)
	if needsParens(n, n.Right, true) {
		right = "(" + right + ")"
	}
	return left + n.Op.Symbol() + right
}

func (b *baseVisitor) VisitMod(n *nodes.ModNode) string {
	return "MOD(" + n.Left.Accept(b.outer) + "," + n.Right.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	return strings.ToUpper(n.Name) + "(" + b.joinNodes(n.Args, ",") + ")"
}

func (b *baseVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(n.Name))
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(b.joinNodes(n.Args, ","))
	if n.IgnoreNulls {
		sb.WriteString(" IGNORE NULLS")
	}
	sb.WriteString(")")
	if n.Window != nil {
		sb.WriteString(" OVER(")
		sb.WriteString(b.renderWindowDef(n.Window))
		sb.WriteString(")")
	}
	return sb.String()
}

// renderWindowDef renders the body of an OVER clause without parentheses.
func (b *baseVisitor) renderWindowDef(w *nodes.WindowDefinition) string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+b.joinNodes(w.PartitionBy, ","))
	}
	if len(w.OrderBy) > 0 {
		terms := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			terms[i] = o.Accept(b.outer)
		}
		parts = append(parts, "ORDER BY "+strings.Join(terms, ","))
	}
	return strings.Join(parts, " ")
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer)
	switch n.Direction {
	case nodes.Asc:
		expr += " ASC"
	case nodes.Desc:
		expr += " DESC"
	}
	return expr
}

func (b *baseVisitor) VisitCase(n *nodes.CaseNode) string {
	return b.renderCase(n, true)
}

// renderCase renders a CASE expression, optionally omitting the operand of
// a simple CASE.
func (b *baseVisitor) renderCase(n *nodes.CaseNode, withOperand bool) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if withOperand && n.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Operand.Accept(b.outer))
	}
	for _, w := range n.Whens {
		sb.WriteString(" WHEN ")
		sb.WriteString(w.Condition.Accept(b.outer))
		sb.WriteString(" THEN ")
		sb.WriteString(w.Result.Accept(b.outer))
	}
	if n.ElseVal != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(n.ElseVal.Accept(b.outer))
	}
	sb.WriteString(" END")
	return sb.String()
}

func (b *baseVisitor) VisitCast(n *nodes.CastNode) string {
	var sb strings.Builder
	sb.WriteString("CAST(")
	sb.WriteString(n.Expr.Accept(b.outer))
	sb.WriteString(" AS ")
	sb.WriteString(n.Type.String())
	if len(n.Sizes) > 0 {
		sizes := make([]string, len(n.Sizes))
		for i, s := range n.Sizes {
			sizes[i] = strconv.Itoa(s)
		}
		sb.WriteString("(" + strings.Join(sizes, ",") + ")")
	}
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitDatePart(n *nodes.DatePartNode) string {
	return strings.ToUpper(n.Part.String())
}

func (b *baseVisitor) VisitSelect(n *nodes.SelectNode) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(n.Projection.Accept(b.outer))
	if n.ProjectionAlias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(b.quoteIdent(n.ProjectionAlias))
	}
	if len(n.From) > 0 {
		from := make([]string, len(n.From))
		for i, t := range n.From {
			from[i] = t.Accept(b.outer)
		}
		sb.WriteString(" FROM ")
		sb.WriteString(strings.Join(from, ", "))
	}
	if n.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(n.Limit))
	}
	return sb.String()
}

// joinNodes renders each node through the outer visitor and joins them with sep.
func (b *baseVisitor) joinNodes(list []nodes.Node, sep string) string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Accept(b.outer)
	}
	return strings.Join(out, sep)
}
