package nodes

// WindowDefinition is the body of an OVER(...) clause. Both lists may be
// empty, which renders as OVER().
type WindowDefinition struct {
	PartitionBy []Node
	OrderBy     []*OrderingNode
}

// NewWindowDefinition creates an empty window definition.
func NewWindowDefinition() *WindowDefinition {
	return &WindowDefinition{}
}

// Partition appends PARTITION BY expressions and returns the definition.
func (w *WindowDefinition) Partition(exprs ...Node) *WindowDefinition {
	w.PartitionBy = append(w.PartitionBy, exprs...)
	return w
}

// Order appends ORDER BY terms and returns the definition.
func (w *WindowDefinition) Order(terms ...*OrderingNode) *WindowDefinition {
	w.OrderBy = append(w.OrderBy, terms...)
	return w
}
