package nodes

// GroupingNode wraps an expression in parentheses. The evaluator emits one
// for every bracketed sub-expression in the source text.
type GroupingNode struct {
	Expr Node
}

func (n *GroupingNode) Accept(v Visitor) string { return v.VisitGrouping(n) }

// Group wraps expr in a GroupingNode.
func Group(expr Node) *GroupingNode {
	return &GroupingNode{Expr: expr}
}
