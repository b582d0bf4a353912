package nodes

// Attribute represents a column reference resolved to one of the
// evaluator's tables.
type Attribute struct {
	Relation *Table
	Name     string
}

func (a *Attribute) Accept(v Visitor) string { return v.VisitAttribute(a) }

// Qualifier returns the alias the column is rendered with.
func (a *Attribute) Qualifier() string {
	if a.Relation == nil {
		return ""
	}
	return a.Relation.AliasName()
}

// StarNode represents an unqualified * argument, as in COUNT(*).
type StarNode struct{}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// Star returns a StarNode.
func Star() *StarNode {
	return &StarNode{}
}
