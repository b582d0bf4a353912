package nodes

import "strings"

// aggregateNames lists the functions that always produce an AggregateNode.
var aggregateNames = map[string]bool{
	"COUNT":        true,
	"SUM":          true,
	"AVG":          true,
	"MIN":          true,
	"MAX":          true,
	"STDDEV":       true,
	"STDDEV_POP":   true,
	"STDDEV_SAMP":  true,
	"VARIANCE":     true,
	"VAR_POP":      true,
	"VAR_SAMP":     true,
	"FIRST_VALUE":  true,
	"LAST_VALUE":   true,
	"MEDIAN":       true,
	"ROW_NUMBER":   true,
	"RANK":         true,
	"DENSE_RANK":   true,
	"PERCENT_RANK": true,
	"CUME_DIST":    true,
	"NTILE":        true,
	"LAG":          true,
	"LEAD":         true,
}

// IsAggregateName reports whether name (any case) is a known aggregate or
// analytic function.
func IsAggregateName(name string) bool {
	return aggregateNames[strings.ToUpper(name)]
}

// AggregateNames returns the known aggregate function names, unordered.
func AggregateNames() []string {
	out := make([]string, 0, len(aggregateNames))
	for name := range aggregateNames {
		out = append(out, name)
	}
	return out
}

// AggregateNode represents an aggregate or analytic function call with
// optional DISTINCT / IGNORE NULLS modifiers and an OVER clause.
type AggregateNode struct {
	Name        string
	Args        []Node
	Distinct    bool
	IgnoreNulls bool
	Window      *WindowDefinition // nil when there is no OVER clause
}

func (n *AggregateNode) Accept(v Visitor) string { return v.VisitAggregate(n) }

// NewAggregateNode creates an AggregateNode.
func NewAggregateNode(name string, args ...Node) *AggregateNode {
	return &AggregateNode{Name: name, Args: args}
}

// Count creates a COUNT aggregate. Pass nil for COUNT(*).
func Count(expr Node) *AggregateNode {
	if expr == nil {
		expr = Star()
	}
	return NewAggregateNode("COUNT", expr)
}

// Sum creates a SUM aggregate.
func Sum(expr Node) *AggregateNode { return NewAggregateNode("SUM", expr) }

// Avg creates an AVG aggregate.
func Avg(expr Node) *AggregateNode { return NewAggregateNode("AVG", expr) }

// Min creates a MIN aggregate.
func Min(expr Node) *AggregateNode { return NewAggregateNode("MIN", expr) }

// Max creates a MAX aggregate.
func Max(expr Node) *AggregateNode { return NewAggregateNode("MAX", expr) }

// Over returns the aggregate with the given window attached.
func (n *AggregateNode) Over(def *WindowDefinition) *AggregateNode {
	n.Window = def
	return n
}
