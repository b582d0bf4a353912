package nodes

// Table is a table registered with an evaluator. Field references carry a
// pointer to their Table and render with its alias.
type Table struct {
	Name  string
	Alias string // empty means the table is referred to by Name
}

// NewTable creates a table reference without an alias.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Accept(v Visitor) string { return v.VisitTable(t) }

// As returns a copy of the table with the given alias.
func (t *Table) As(alias string) *Table {
	return &Table{Name: t.Name, Alias: alias}
}

// AliasName returns the name used to qualify columns of this table.
func (t *Table) AliasName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// Col creates an Attribute (column reference) bound to this table.
func (t *Table) Col(name string) *Attribute {
	return &Attribute{Relation: t, Name: name}
}
