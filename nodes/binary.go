package nodes

// ComparisonOp represents a binary comparison operator.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
)

var comparisonSymbols = [...]string{
	OpEq:    "=",
	OpNotEq: "<>",
	OpGt:    ">",
	OpGtEq:  ">=",
	OpLt:    "<",
	OpLtEq:  "<=",
}

// Symbol returns the SQL spelling of the operator. OpNotEq always
// renders as <> even when parsed from !=.
func (op ComparisonOp) Symbol() string { return comparisonSymbols[op] }

// ComparisonNode represents a binary comparison: Left Op Right.
type ComparisonNode struct {
	Left  Node
	Right Node
	Op    ComparisonOp
}

func (n *ComparisonNode) Accept(v Visitor) string { return v.VisitComparison(n) }

// NewComparisonNode creates a ComparisonNode.
func NewComparisonNode(left, right Node, op ComparisonOp) *ComparisonNode {
	return &ComparisonNode{Left: left, Right: right, Op: op}
}

// Eq builds left = right.
func Eq(left, right Node) *ComparisonNode { return NewComparisonNode(left, right, OpEq) }

// NotEq builds left <> right.
func NotEq(left, right Node) *ComparisonNode { return NewComparisonNode(left, right, OpNotEq) }

// Gt builds left > right.
func Gt(left, right Node) *ComparisonNode { return NewComparisonNode(left, right, OpGt) }

// GtEq builds left >= right.
func GtEq(left, right Node) *ComparisonNode { return NewComparisonNode(left, right, OpGtEq) }

// Lt builds left < right.
func Lt(left, right Node) *ComparisonNode { return NewComparisonNode(left, right, OpLt) }

// LtEq builds left <= right.
func LtEq(left, right Node) *ComparisonNode { return NewComparisonNode(left, right, OpLtEq) }

// MatchOp is the pattern-matching operator of a MatchNode.
type MatchOp int

const (
	OpLike MatchOp = iota
	OpILike
)

// MatchNode represents Left [NOT] LIKE Pattern or Left [NOT] ILIKE Pattern.
type MatchNode struct {
	Left    Node
	Pattern Node
	Op      MatchOp
	Negate  bool
}

func (n *MatchNode) Accept(v Visitor) string { return v.VisitMatch(n) }

// Like builds left LIKE pattern.
func Like(left, pattern Node) *MatchNode {
	return &MatchNode{Left: left, Pattern: pattern, Op: OpLike}
}

// NotLike builds left NOT LIKE pattern.
func NotLike(left, pattern Node) *MatchNode {
	return &MatchNode{Left: left, Pattern: pattern, Op: OpLike, Negate: true}
}

// ILike builds left ILIKE pattern.
func ILike(left, pattern Node) *MatchNode {
	return &MatchNode{Left: left, Pattern: pattern, Op: OpILike}
}

// NotILike builds left NOT ILIKE pattern.
func NotILike(left, pattern Node) *MatchNode {
	return &MatchNode{Left: left, Pattern: pattern, Op: OpILike, Negate: true}
}
