// Package evaluator turns SQL expression fragments into expression trees.
//
// An Evaluator is built once from an explicit table list and is safe for
// concurrent use: each Eval call owns its lexer, parser and result.
//
//	ev, err := evaluator.New(evaluator.TableRef{Name: "foo"}, evaluator.TableRef{Name: "bar", Alias: "b"})
//	node, err := ev.Eval("bar.fizz != 1")
//	sql := node.Accept(visitors.NewANSIVisitor()) // "b"."fizz"<>1
package evaluator

import (
	"fmt"
	"strings"

	"github.com/bawdo/sqlterm/nodes"
)

// TableRef names a table and the alias its columns render with. An empty
// Alias means the table name itself is used.
type TableRef struct {
	Name  string
	Alias string
}

func (r TableRef) String() string {
	if r.Alias == "" || r.Alias == r.Name {
		return r.Name
	}
	return r.Name + ":" + r.Alias
}

// ParseTableRefs parses a comma-separated list of name[:alias] entries,
// for example "foo,bar:b".
func ParseTableRefs(s string) ([]TableRef, error) {
	var refs []TableRef
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, alias, _ := strings.Cut(entry, ":")
		name, alias = strings.TrimSpace(name), strings.TrimSpace(alias)
		if name == "" {
			return nil, &ConfigError{Message: fmt.Sprintf("missing table name in %q", entry)}
		}
		refs = append(refs, TableRef{Name: name, Alias: alias})
	}
	return refs, nil
}

// Evaluator parses expressions against a fixed set of tables.
type Evaluator struct {
	tables   []*nodes.Table
	resolver *Resolver
}

// New creates an Evaluator. At least one table is required; table names
// and effective aliases must be non-empty and unique.
func New(refs ...TableRef) (*Evaluator, error) {
	if len(refs) == 0 {
		return nil, &ConfigError{Message: "at least one table is required"}
	}
	names := make(map[string]bool, len(refs))
	aliases := make(map[string]bool, len(refs))
	tables := make([]*nodes.Table, 0, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref.Name) == "" {
			return nil, &ConfigError{Message: "table name must not be empty"}
		}
		if names[ref.Name] {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate table %q", ref.Name)}
		}
		names[ref.Name] = true

		t := nodes.NewTable(ref.Name)
		if ref.Alias != "" {
			t = t.As(ref.Alias)
		}
		if aliases[t.AliasName()] {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate alias %q", t.AliasName())}
		}
		aliases[t.AliasName()] = true
		tables = append(tables, t)
	}
	return &Evaluator{tables: tables, resolver: NewResolver(tables)}, nil
}

// Eval parses text into an expression tree. Surrounding whitespace,
// including trailing newlines, is ignored.
func (e *Evaluator) Eval(text string) (nodes.Node, error) {
	tokens, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	return newParser(tokens, e.resolver).parse()
}

// Tables returns copies of the registered tables in registration order.
func (e *Evaluator) Tables() []*nodes.Table {
	out := make([]*nodes.Table, len(e.tables))
	for i, t := range e.tables {
		c := *t
		out[i] = &c
	}
	return out
}
