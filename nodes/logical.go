package nodes

// LogicalOp identifies the boolean combinator.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

// LogicalNode represents Left AND Right or Left OR Right.
type LogicalNode struct {
	Left  Node
	Right Node
	Op    LogicalOp
}

func (n *LogicalNode) Accept(v Visitor) string { return v.VisitLogical(n) }

// And combines left and right with AND.
func And(left, right Node) *LogicalNode {
	return &LogicalNode{Left: left, Right: right, Op: OpAnd}
}

// Or combines left and right with OR.
func Or(left, right Node) *LogicalNode {
	return &LogicalNode{Left: left, Right: right, Op: OpOr}
}

// NotNode represents a logical NOT of an expression.
type NotNode struct {
	Expr Node
}

func (n *NotNode) Accept(v Visitor) string { return v.VisitNot(n) }

// Not negates expr.
func Not(expr Node) *NotNode {
	return &NotNode{Expr: expr}
}
