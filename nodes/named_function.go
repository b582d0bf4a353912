package nodes

// NamedFunctionNode represents a scalar SQL function call like COALESCE or
// LOWER. The name is stored as written and rendered upper-cased.
type NamedFunctionNode struct {
	Name string
	Args []Node
}

func (n *NamedFunctionNode) Accept(v Visitor) string { return v.VisitNamedFunction(n) }

// NewNamedFunction creates a NamedFunctionNode.
func NewNamedFunction(name string, args ...Node) *NamedFunctionNode {
	return &NamedFunctionNode{Name: name, Args: args}
}

// Coalesce creates a COALESCE(args...) function call.
func Coalesce(args ...Node) *NamedFunctionNode {
	return NewNamedFunction("COALESCE", args...)
}

// Lower creates a LOWER(expr) function call.
func Lower(expr Node) *NamedFunctionNode {
	return NewNamedFunction("LOWER", expr)
}

// Upper creates an UPPER(expr) function call.
func Upper(expr Node) *NamedFunctionNode {
	return NewNamedFunction("UPPER", expr)
}
