package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/sqlterm/nodes"
)

// Color constants for DOT node categories.
const (
	colorTable      = "#6CA6CD" // blue: tables, select
	colorAttribute  = "#B0D4E8" // light blue: attributes, stars
	colorComparison = "#FFB347" // orange: comparisons, predicates
	colorLogical    = "#FFEB80" // yellow: AND, OR, NOT, Grouping, CASE
	colorLiteral    = "#D3D3D3" // grey: literals, date parts
	colorOrdering   = "#CDA0E0" // purple: ordering
	colorArithmetic = "#98FB98" // mint green: arithmetic, concat
	colorFunction   = "#87CEEB" // sky blue: aggregates, functions, casts
)

// dotNode represents a single node in the DOT graph.
type dotNode struct {
	id    string
	label string
	color string
}

// dotEdge represents a directed edge between two nodes in the DOT graph.
type dotEdge struct {
	from  string
	to    string
	label string
}

// DotVisitor walks the tree and produces Graphviz DOT output.
// It implements nodes.Visitor.
type DotVisitor struct {
	nextID    int
	nodes     []dotNode
	edges     []dotEdge
	parentID  string
	edgeLabel string
}

// NewDotVisitor creates a new DotVisitor ready to walk a tree.
func NewDotVisitor() *DotVisitor {
	return &DotVisitor{}
}

// addNode creates a new DOT node with the given label and color, returning its ID.
func (dv *DotVisitor) addNode(label, color string) string {
	id := fmt.Sprintf("n%d", dv.nextID)
	dv.nextID++
	dv.nodes = append(dv.nodes, dotNode{id: id, label: label, color: color})
	return id
}

// addEdge records a directed edge from one node to another.
func (dv *DotVisitor) addEdge(from, to, label string) {
	dv.edges = append(dv.edges, dotEdge{from: from, to: to, label: label})
}

// visitChild saves and restores the parent context, sets the edge label,
// and calls child.Accept to recursively visit the child node.
func (dv *DotVisitor) visitChild(parentID, label string, child nodes.Node) string {
	savedParent := dv.parentID
	savedLabel := dv.edgeLabel
	dv.parentID = parentID
	dv.edgeLabel = label
	result := child.Accept(dv)
	dv.parentID = savedParent
	dv.edgeLabel = savedLabel
	return result
}

// visitChildList visits a slice of nodes as indexed children (e.g. "ARG[0]", "ARG[1]").
func (dv *DotVisitor) visitChildList(parentID, prefix string, items []nodes.Node) {
	for i, item := range items {
		dv.visitChild(parentID, fmt.Sprintf("%s[%d]", prefix, i), item)
	}
}

// connectToParent adds an edge from the current parentID to nodeID if a parent exists.
func (dv *DotVisitor) connectToParent(nodeID string) {
	if dv.parentID != "" {
		dv.addEdge(dv.parentID, nodeID, dv.edgeLabel)
	}
}

// leaf adds a childless node connected to the current parent.
func (dv *DotVisitor) leaf(label, color string) string {
	id := dv.addNode(label, color)
	dv.connectToParent(id)
	return id
}

// NodeCount returns the number of nodes accumulated so far.
func (dv *DotVisitor) NodeCount() int {
	return len(dv.nodes)
}

// ToDot renders the accumulated graph.
func (dv *DotVisitor) ToDot() string {
	var sb strings.Builder

	sb.WriteString("digraph AST {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	for _, n := range dv.nodes {
		sb.WriteString(fmt.Sprintf("  %s [label=\"%s\", fillcolor=\"%s\"];\n",
			n.id, escapeLabel(n.label), n.color))
	}

	for _, e := range dv.edges {
		if e.label != "" {
			sb.WriteString(fmt.Sprintf("  %s -> %s [label=\"%s\"];\n", e.from, e.to, e.label))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -> %s;\n", e.from, e.to))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeLabel escapes double quotes in DOT labels.
// Backslash sequences like \n are intentional DOT line breaks and are preserved.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

// --- Visitor interface implementation ---

func (dv *DotVisitor) VisitTable(n *nodes.Table) string {
	label := "Table\\n" + n.Name
	if n.Alias != "" && n.Alias != n.Name {
		label += " AS " + n.Alias
	}
	return dv.leaf(label, colorTable)
}

func (dv *DotVisitor) VisitAttribute(n *nodes.Attribute) string {
	label := "Attribute\\n"
	if q := n.Qualifier(); q != "" {
		label += q + "."
	}
	return dv.leaf(label+n.Name, colorAttribute)
}

func (dv *DotVisitor) VisitStar(_ *nodes.StarNode) string {
	return dv.leaf("Star\\n*", colorAttribute)
}

func (dv *DotVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	value := "NULL"
	if n.Value != nil {
		value = fmt.Sprintf("%v", n.Value)
	}
	if n.Kind() == nodes.KindString {
		value = "'" + value + "'"
	}
	return dv.leaf(fmt.Sprintf("Literal\\n%s", value), colorLiteral)
}

func (dv *DotVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	id := dv.leaf("Grouping\\n( )", colorLogical)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitNot(n *nodes.NotNode) string {
	id := dv.leaf("NOT", colorLogical)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitLogical(n *nodes.LogicalNode) string {
	label := "AND"
	if n.Op == nodes.OpOr {
		label = "OR"
	}
	id := dv.leaf(label, colorLogical)
	dv.visitChild(id, "LEFT", n.Left)
	dv.visitChild(id, "RIGHT", n.Right)
	return id
}

func (dv *DotVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	id := dv.leaf("Comparison\\n"+n.Op.Symbol(), colorComparison)
	dv.visitChild(id, "LEFT", n.Left)
	dv.visitChild(id, "RIGHT", n.Right)
	return id
}

func (dv *DotVisitor) VisitMatch(n *nodes.MatchNode) string {
	label := "LIKE"
	if n.Op == nodes.OpILike {
		label = "ILIKE"
	}
	if n.Negate {
		label = "NOT " + label
	}
	id := dv.leaf("Match\\n"+label, colorComparison)
	dv.visitChild(id, "LEFT", n.Left)
	dv.visitChild(id, "PATTERN", n.Pattern)
	return id
}

func (dv *DotVisitor) VisitNullTest(n *nodes.NullTestNode) string {
	id := dv.leaf("IS NULL", colorComparison)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitIn(n *nodes.InNode) string {
	label := "IN"
	if n.Negate {
		label = "NOT IN"
	}
	id := dv.leaf(label, colorComparison)
	dv.visitChild(id, "EXPR", n.Expr)
	dv.visitChildList(id, "VAL", n.Vals)
	return id
}

func (dv *DotVisitor) VisitBetween(n *nodes.BetweenNode) string {
	id := dv.leaf("BETWEEN", colorComparison)
	dv.visitChild(id, "EXPR", n.Expr)
	dv.visitChild(id, "LOW", n.Low)
	dv.visitChild(id, "HIGH", n.High)
	return id
}

func (dv *DotVisitor) VisitConcat(n *nodes.ConcatNode) string {
	id := dv.leaf("Concat\\n||", colorArithmetic)
	dv.visitChildList(id, "PART", n.Parts)
	return id
}

func (dv *DotVisitor) VisitInfix(n *nodes.InfixNode) string {
	id := dv.leaf("Infix\\n"+n.Op.Symbol(), colorArithmetic)
	dv.visitChild(id, "LEFT", n.Left)
	dv.visitChild(id, "RIGHT", n.Right)
	return id
}

func (dv *DotVisitor) VisitMod(n *nodes.ModNode) string {
	id := dv.leaf("MOD", colorArithmetic)
	dv.visitChild(id, "LEFT", n.Left)
	dv.visitChild(id, "RIGHT", n.Right)
	return id
}

func (dv *DotVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	id := dv.leaf(strings.ToUpper(n.Name), colorFunction)
	dv.visitChildList(id, "ARG", n.Args)
	return id
}

func (dv *DotVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	label := strings.ToUpper(n.Name)
	if n.Distinct {
		label += "\\nDISTINCT"
	}
	if n.IgnoreNulls {
		label += "\\nIGNORE NULLS"
	}
	id := dv.leaf(label, colorFunction)
	dv.visitChildList(id, "ARG", n.Args)
	if n.Window != nil {
		overID := dv.addNode("OVER", colorFunction)
		dv.addEdge(id, overID, "WINDOW")
		dv.visitChildList(overID, "PARTITION", n.Window.PartitionBy)
		for i, o := range n.Window.OrderBy {
			dv.visitChild(overID, fmt.Sprintf("ORDER[%d]", i), o)
		}
	}
	return id
}

func (dv *DotVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	label := "Order"
	switch n.Direction {
	case nodes.Asc:
		label += "\\nASC"
	case nodes.Desc:
		label += "\\nDESC"
	}
	id := dv.leaf(label, colorOrdering)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitCase(n *nodes.CaseNode) string {
	id := dv.leaf("CASE", colorLogical)
	if n.Operand != nil {
		dv.visitChild(id, "OPERAND", n.Operand)
	}
	for i, w := range n.Whens {
		dv.visitChild(id, fmt.Sprintf("WHEN[%d]", i), w.Condition)
		dv.visitChild(id, fmt.Sprintf("THEN[%d]", i), w.Result)
	}
	if n.ElseVal != nil {
		dv.visitChild(id, "ELSE", n.ElseVal)
	}
	return id
}

func (dv *DotVisitor) VisitCast(n *nodes.CastNode) string {
	label := "CAST\\n" + n.Type.String()
	if len(n.Sizes) > 0 {
		sizes := make([]string, len(n.Sizes))
		for i, s := range n.Sizes {
			sizes[i] = fmt.Sprintf("%d", s)
		}
		label += "(" + strings.Join(sizes, ",") + ")"
	}
	id := dv.leaf(label, colorFunction)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitDatePart(n *nodes.DatePartNode) string {
	return dv.leaf("DatePart\\n"+strings.ToUpper(n.Part.String()), colorLiteral)
}

func (dv *DotVisitor) VisitSelect(n *nodes.SelectNode) string {
	id := dv.leaf("Select", colorTable)
	dv.visitChild(id, "PROJECTION", n.Projection)
	for i, t := range n.From {
		dv.visitChild(id, fmt.Sprintf("FROM[%d]", i), t)
	}
	if n.Limit > 0 {
		limitID := dv.addNode(fmt.Sprintf("Limit\\n%d", n.Limit), colorLiteral)
		dv.addEdge(id, limitID, "LIMIT")
	}
	return id
}
