// Package testutil provides shared test helpers for the sqlterm project.
package testutil

import "github.com/bawdo/sqlterm/nodes"

// StubVisitor implements nodes.Visitor with minimal return values for testing.
// Methods return meaningful short strings to aid in test assertions.
type StubVisitor struct{}

var _ nodes.Visitor = StubVisitor{}

func (sv StubVisitor) VisitTable(n *nodes.Table) string         { return n.Name }
func (sv StubVisitor) VisitAttribute(n *nodes.Attribute) string { return n.Qualifier() + "." + n.Name }
func (sv StubVisitor) VisitStar(n *nodes.StarNode) string       { return "*" }
func (sv StubVisitor) VisitLiteral(n *nodes.LiteralNode) string { return "lit" }
func (sv StubVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	return "(" + n.Expr.Accept(sv) + ")"
}
func (sv StubVisitor) VisitNot(n *nodes.NotNode) string { return "not " + n.Expr.Accept(sv) }
func (sv StubVisitor) VisitLogical(n *nodes.LogicalNode) string {
	if n.Op == nodes.OpOr {
		return n.Left.Accept(sv) + " or " + n.Right.Accept(sv)
	}
	return n.Left.Accept(sv) + " and " + n.Right.Accept(sv)
}
func (sv StubVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	return n.Left.Accept(sv) + n.Op.Symbol() + n.Right.Accept(sv)
}
func (sv StubVisitor) VisitMatch(n *nodes.MatchNode) string                 { return "match" }
func (sv StubVisitor) VisitNullTest(n *nodes.NullTestNode) string           { return "null_test" }
func (sv StubVisitor) VisitIn(n *nodes.InNode) string                       { return "in" }
func (sv StubVisitor) VisitBetween(n *nodes.BetweenNode) string             { return "between" }
func (sv StubVisitor) VisitConcat(n *nodes.ConcatNode) string               { return "concat" }
func (sv StubVisitor) VisitInfix(n *nodes.InfixNode) string                 { return "infix" }
func (sv StubVisitor) VisitMod(n *nodes.ModNode) string                     { return "mod" }
func (sv StubVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string { return "named_func" }
func (sv StubVisitor) VisitAggregate(n *nodes.AggregateNode) string         { return "aggregate" }
func (sv StubVisitor) VisitOrdering(n *nodes.OrderingNode) string           { return "ordering" }
func (sv StubVisitor) VisitCase(n *nodes.CaseNode) string                   { return "case" }
func (sv StubVisitor) VisitCast(n *nodes.CastNode) string                   { return "cast" }
func (sv StubVisitor) VisitDatePart(n *nodes.DatePartNode) string           { return n.Part.String() }
func (sv StubVisitor) VisitSelect(n *nodes.SelectNode) string               { return "select" }
