package nodes

// InfixOp identifies the binary arithmetic operator.
type InfixOp int

const (
	OpPlus InfixOp = iota
	OpMinus
	OpMultiply
	OpDivide
)

var infixSymbols = [...]string{
	OpPlus:     "+",
	OpMinus:    "-",
	OpMultiply: "*",
	OpDivide:   "/",
}

func (op InfixOp) Symbol() string { return infixSymbols[op] }

// Precedence returns the binding strength of the operator; higher binds
// tighter.
func (op InfixOp) Precedence() int {
	switch op {
	case OpMultiply, OpDivide:
		return 2
	default:
		return 1
	}
}

// InfixNode represents a binary arithmetic expression.
type InfixNode struct {
	Left  Node
	Right Node
	Op    InfixOp
}

func (n *InfixNode) Accept(v Visitor) string { return v.VisitInfix(n) }

// NewInfixNode creates an InfixNode.
func NewInfixNode(left, right Node, op InfixOp) *InfixNode {
	return &InfixNode{Left: left, Right: right, Op: op}
}

// Plus builds left + right.
func Plus(left, right Node) *InfixNode { return NewInfixNode(left, right, OpPlus) }

// Minus builds left - right.
func Minus(left, right Node) *InfixNode { return NewInfixNode(left, right, OpMinus) }

// Multiply builds left * right.
func Multiply(left, right Node) *InfixNode { return NewInfixNode(left, right, OpMultiply) }

// Divide builds left / right.
func Divide(left, right Node) *InfixNode { return NewInfixNode(left, right, OpDivide) }

// ModNode represents the modulo of Left by Right. It renders as MOD(l,r)
// in most dialects.
type ModNode struct {
	Left  Node
	Right Node
}

func (n *ModNode) Accept(v Visitor) string { return v.VisitMod(n) }

// Mod builds MOD(left, right).
func Mod(left, right Node) *ModNode {
	return &ModNode{Left: left, Right: right}
}

// ConcatNode represents string concatenation of two or more parts.
type ConcatNode struct {
	Parts []Node
}

func (n *ConcatNode) Accept(v Visitor) string { return v.VisitConcat(n) }

// NewConcat builds a ConcatNode, flattening nested concatenations so that
// a||b||c yields a single node with three parts.
func NewConcat(parts ...Node) *ConcatNode {
	flat := make([]Node, 0, len(parts))
	for _, p := range parts {
		if c, ok := p.(*ConcatNode); ok {
			flat = append(flat, c.Parts...)
			continue
		}
		flat = append(flat, p)
	}
	return &ConcatNode{Parts: flat}
}
