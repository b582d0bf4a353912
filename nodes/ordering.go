package nodes

// OrderDirection specifies the sort direction of an ORDER BY term.
type OrderDirection int

const (
	// DirDefault renders no direction keyword.
	DirDefault OrderDirection = iota
	Asc
	Desc
)

// OrderingNode is one ORDER BY term of a window definition.
type OrderingNode struct {
	Expr      Node
	Direction OrderDirection
}

func (n *OrderingNode) Accept(v Visitor) string { return v.VisitOrdering(n) }

// OrderBy creates an ordering term with no explicit direction.
func OrderBy(expr Node) *OrderingNode {
	return &OrderingNode{Expr: expr}
}

// OrderAsc creates an ordering term with ASC.
func OrderAsc(expr Node) *OrderingNode {
	return &OrderingNode{Expr: expr, Direction: Asc}
}

// OrderDesc creates an ordering term with DESC.
func OrderDesc(expr Node) *OrderingNode {
	return &OrderingNode{Expr: expr, Direction: Desc}
}
