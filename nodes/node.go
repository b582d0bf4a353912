// Package nodes defines the expression tree produced by the evaluator and
// rendered back into SQL by the visitors package.
package nodes

// Node is the interface that all expression nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor defines the interface for walking the tree and producing output.
// Concrete visitors (e.g., ANSI, Postgres, DOT) implement every method, so
// adding a node type fails to compile until each visitor handles it.
type Visitor interface {
	VisitTable(node *Table) string
	VisitAttribute(node *Attribute) string
	VisitStar(node *StarNode) string
	VisitLiteral(node *LiteralNode) string
	VisitGrouping(node *GroupingNode) string
	VisitNot(node *NotNode) string
	VisitLogical(node *LogicalNode) string
	VisitComparison(node *ComparisonNode) string
	VisitMatch(node *MatchNode) string
	VisitNullTest(node *NullTestNode) string
	VisitIn(node *InNode) string
	VisitBetween(node *BetweenNode) string
	VisitConcat(node *ConcatNode) string
	VisitInfix(node *InfixNode) string
	VisitMod(node *ModNode) string
	VisitNamedFunction(node *NamedFunctionNode) string
	VisitAggregate(node *AggregateNode) string
	VisitOrdering(node *OrderingNode) string
	VisitCase(node *CaseNode) string
	VisitCast(node *CastNode) string
	VisitDatePart(node *DatePartNode) string
	VisitSelect(node *SelectNode) string
}

// Parameterizer is implemented by visitors that support parameterized output.
// Callers use type assertion to extract collected parameters after SQL generation.
type Parameterizer interface {
	Params() []any
	Reset()
}
