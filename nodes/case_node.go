package nodes

// CaseWhen represents a single WHEN ... THEN ... pair in a CASE expression.
type CaseWhen struct {
	Condition Node
	Result    Node
}

// CaseNode represents a SQL CASE expression:
//
//	CASE [operand] WHEN cond THEN result ... [ELSE val] END
//
// If Operand is nil, it is a "searched CASE" (CASE WHEN cond THEN ...).
// For the simple form each Condition holds the bare comparison value.
type CaseNode struct {
	Operand Node       // nil for searched CASE
	Whens   []CaseWhen // WHEN ... THEN ... pairs
	ElseVal Node       // ELSE value (nil if omitted)
}

func (n *CaseNode) Accept(v Visitor) string { return v.VisitCase(n) }

// NewCase creates a CaseNode. Pass an operand for simple CASE, or nil/no args for searched CASE.
func NewCase(operand ...Node) *CaseNode {
	n := &CaseNode{}
	if len(operand) > 0 {
		n.Operand = operand[0]
	}
	return n
}

// When adds a WHEN ... THEN ... pair and returns the CaseNode for chaining.
func (n *CaseNode) When(cond, result Node) *CaseNode {
	n.Whens = append(n.Whens, CaseWhen{Condition: cond, Result: result})
	return n
}

// Else sets the ELSE value and returns the CaseNode for chaining.
func (n *CaseNode) Else(result Node) *CaseNode {
	n.ElseVal = result
	return n
}

// Searched returns the searched form of the CASE. A simple CASE has each
// WHEN value combined with the operand into operand = value; a searched
// CASE is returned unchanged.
func (n *CaseNode) Searched() *CaseNode {
	if n.Operand == nil {
		return n
	}
	out := &CaseNode{ElseVal: n.ElseVal, Whens: make([]CaseWhen, len(n.Whens))}
	for i, w := range n.Whens {
		out.Whens[i] = CaseWhen{Condition: Eq(n.Operand, w.Condition), Result: w.Result}
	}
	return out
}
