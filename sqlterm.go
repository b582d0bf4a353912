// Package sqlterm translates SQL expression fragments into expression
// trees and renders them for a SQL dialect.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/sqlterm/evaluator (lexer, parser, field resolution)
//   - github.com/bawdo/sqlterm/nodes (expression nodes)
//   - github.com/bawdo/sqlterm/visitors (SQL generation)
package sqlterm

import (
	"github.com/bawdo/sqlterm/evaluator"
	"github.com/bawdo/sqlterm/nodes"
	"github.com/bawdo/sqlterm/visitors"
)

// --- Evaluator ---

// Evaluator parses expressions against a fixed set of tables.
type Evaluator = evaluator.Evaluator

// TableRef names a table and its alias.
type TableRef = evaluator.TableRef

// New creates an Evaluator over the given tables.
func New(tables ...TableRef) (*Evaluator, error) {
	return evaluator.New(tables...)
}

// ParseTableRefs parses a "foo,bar:b" style table list.
func ParseTableRefs(s string) ([]TableRef, error) {
	return evaluator.ParseTableRefs(s)
}

// Translate evaluates text against tables and renders it for dialect.
// It returns the SQL and any bind parameters collected by the visitor.
func Translate(tables []TableRef, text, dialect string, opts ...visitors.Option) (string, []any, error) {
	ev, err := evaluator.New(tables...)
	if err != nil {
		return "", nil, err
	}
	node, err := ev.Eval(text)
	if err != nil {
		return "", nil, err
	}
	v, err := visitors.ForDialect(dialect, opts...)
	if err != nil {
		return "", nil, err
	}
	return node.Accept(v), v.Params(), nil
}

// --- Errors ---

var (
	ErrSyntax          = evaluator.ErrSyntax
	ErrUnresolvedField = evaluator.ErrUnresolvedField
	ErrUnsupported     = evaluator.ErrUnsupported
	ErrConfig          = evaluator.ErrConfig
)

// SyntaxError reports malformed, incomplete or empty input.
type SyntaxError = evaluator.SyntaxError

// UnresolvedFieldError reports a field that cannot be bound to a table.
type UnresolvedFieldError = evaluator.UnresolvedFieldError

// UnsupportedConstructError reports valid SQL outside the supported subset.
type UnsupportedConstructError = evaluator.UnsupportedConstructError

// --- Core Node Types ---

// Node is the base interface all expression nodes implement.
type Node = nodes.Node

// Table represents a SQL table reference.
type Table = nodes.Table

// Attribute represents a column reference (e.g., table.column).
type Attribute = nodes.Attribute

// --- Visitor Types ---

// ANSIVisitor generates the canonical rendering.
type ANSIVisitor = visitors.ANSIVisitor

// PostgresVisitor generates PostgreSQL-compatible SQL.
type PostgresVisitor = visitors.PostgresVisitor

// MySQLVisitor generates MySQL-compatible SQL.
type MySQLVisitor = visitors.MySQLVisitor

// SQLiteVisitor generates SQLite-compatible SQL.
type SQLiteVisitor = visitors.SQLiteVisitor

// --- Visitor Constructors ---

// NewANSIVisitor creates a new canonical visitor.
func NewANSIVisitor(opts ...visitors.Option) *visitors.ANSIVisitor {
	return visitors.NewANSIVisitor(opts...)
}

// NewPostgresVisitor creates a new PostgreSQL visitor.
func NewPostgresVisitor(opts ...visitors.Option) *visitors.PostgresVisitor {
	return visitors.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a new MySQL visitor.
func NewMySQLVisitor(opts ...visitors.Option) *visitors.MySQLVisitor {
	return visitors.NewMySQLVisitor(opts...)
}

// NewSQLiteVisitor creates a new SQLite visitor.
func NewSQLiteVisitor(opts ...visitors.Option) *visitors.SQLiteVisitor {
	return visitors.NewSQLiteVisitor(opts...)
}

// --- Visitor Options ---

// WithParams renders literals as bind placeholders collected by Params().
func WithParams() visitors.Option {
	return visitors.WithParams()
}

// WithoutParams interpolates escaped literals into the SQL. This is the
// default.
func WithoutParams() visitors.Option {
	return visitors.WithoutParams()
}
