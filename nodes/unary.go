package nodes

// NullTestNode represents Expr IS NULL. IS NOT NULL is expressed as
// Not(NullTestNode) so that every dialect renders it the same way.
type NullTestNode struct {
	Expr Node
}

func (n *NullTestNode) Accept(v Visitor) string { return v.VisitNullTest(n) }

// IsNull builds expr IS NULL.
func IsNull(expr Node) *NullTestNode {
	return &NullTestNode{Expr: expr}
}

// IsNotNull builds NOT (expr IS NULL).
func IsNotNull(expr Node) *NotNode {
	return Not(IsNull(expr))
}
