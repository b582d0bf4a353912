package nodes

// SelectNode is the minimal statement used to preview an expression
// against a live database:
//
//	SELECT <Projection> AS <ProjectionAlias> FROM <From...> LIMIT <Limit>
type SelectNode struct {
	Projection      Node
	ProjectionAlias string
	From            []*Table
	Limit           int // zero means no LIMIT clause
}

func (n *SelectNode) Accept(v Visitor) string { return v.VisitSelect(n) }

// NewSelect builds a preview statement selecting expr from tables.
func NewSelect(expr Node, alias string, from []*Table, limit int) *SelectNode {
	return &SelectNode{Projection: expr, ProjectionAlias: alias, From: from, Limit: limit}
}
