package visitors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bawdo/sqlterm/nodes"
)

// ErrUnknownDialect is returned by ForDialect for an unrecognised name.
var ErrUnknownDialect = errors.New("unknown dialect")

// SQLVisitor is a dialect visitor that also collects bind parameters.
type SQLVisitor interface {
	nodes.Visitor
	nodes.Parameterizer
}

// Dialects lists the names accepted by ForDialect.
var Dialects = []string{"ansi", "mysql", "postgres", "sqlite"}

// ForDialect returns a fresh visitor for the named dialect. Names are
// case-insensitive.
func ForDialect(name string, opts ...Option) (SQLVisitor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ansi", "":
		return NewANSIVisitor(opts...), nil
	case "postgres", "postgresql":
		return NewPostgresVisitor(opts...), nil
	case "mysql":
		return NewMySQLVisitor(opts...), nil
	case "sqlite":
		return NewSQLiteVisitor(opts...), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownDialect, name, strings.Join(Dialects, ", "))
}
