package evaluator

import (
	"fmt"

	"github.com/bawdo/sqlterm/nodes"
)

// Resolver binds field references to the tables an Evaluator was built
// with. It never changes after construction.
type Resolver struct {
	tables []*nodes.Table
	byName map[string]*nodes.Table
}

// NewResolver creates a Resolver over tables. Callers guarantee that table
// names are unique.
func NewResolver(tables []*nodes.Table) *Resolver {
	byName := make(map[string]*nodes.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	return &Resolver{tables: tables, byName: byName}
}

// Resolve returns the attribute for qualifier.column. A qualifier must be a
// registered table name; it is matched exactly. Without a qualifier the
// column is bound to the only registered table, and is an error when more
// than one table is registered.
func (r *Resolver) Resolve(qualifier, column string) (*nodes.Attribute, error) {
	if qualifier != "" {
		if t, ok := r.byName[qualifier]; ok {
			return bind(t, column), nil
		}
		reason := "no table named " + qualifier
		for _, t := range r.tables {
			if t.Alias == qualifier {
				reason = fmt.Sprintf("%s is an alias; qualify with the table name %s", qualifier, t.Name)
				break
			}
		}
		return nil, &UnresolvedFieldError{Qualifier: qualifier, Column: column, Reason: reason}
	}

	if len(r.tables) != 1 {
		return nil, &UnresolvedFieldError{
			Column: column,
			Reason: fmt.Sprintf("ambiguous without a table qualifier (%d tables registered)", len(r.tables)),
		}
	}
	return bind(r.tables[0], column), nil
}

// bind attaches column to a copy of t, so trees never share the
// resolver's tables.
func bind(t *nodes.Table, column string) *nodes.Attribute {
	tc := *t
	return tc.Col(column)
}
