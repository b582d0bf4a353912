package nodes

// InNode represents an IN or NOT IN set predicate.
type InNode struct {
	Expr   Node
	Vals   []Node
	Negate bool
}

func (n *InNode) Accept(v Visitor) string { return v.VisitIn(n) }

// In builds expr IN (vals...).
func In(expr Node, vals ...Node) *InNode {
	return &InNode{Expr: expr, Vals: vals}
}

// NotIn builds expr NOT IN (vals...).
func NotIn(expr Node, vals ...Node) *InNode {
	return &InNode{Expr: expr, Vals: vals, Negate: true}
}

// BetweenNode represents Expr BETWEEN Low AND High. NOT BETWEEN is
// expressed by wrapping it in a NotNode.
type BetweenNode struct {
	Expr Node
	Low  Node
	High Node
}

func (n *BetweenNode) Accept(v Visitor) string { return v.VisitBetween(n) }

// Between builds expr BETWEEN low AND high.
func Between(expr, low, high Node) *BetweenNode {
	return &BetweenNode{Expr: expr, Low: low, High: high}
}
