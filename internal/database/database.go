// Package database runs preview queries for rendered expressions against a
// live PostgreSQL, MySQL or SQLite database.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/bawdo/sqlterm/nodes"
	"github.com/bawdo/sqlterm/visitors"
)

// ErrUnknownEngine is returned by Open for an engine without a driver.
var ErrUnknownEngine = errors.New("unknown engine")

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// Engines lists the engine names accepted by Open.
var Engines = []string{"mysql", "postgres", "sqlite"}

// MaxRows caps the rows read by Preview regardless of the requested limit.
const MaxRows = 1000

// ProjectionAlias is the column name given to the previewed expression.
const ProjectionAlias = "expr"

// Conn is an open database connection with a lazily filled schema cache.
// It is not safe for concurrent use.
type Conn struct {
	db     *sql.DB
	dsn    string
	engine string
	schema schemaCache
	log    *slog.Logger
}

// Open connects to dsn with the driver registered for engine and pings it.
// Schema introspection failures are logged and otherwise ignored.
func Open(ctx context.Context, engine, dsn string, logger *slog.Logger) (*Conn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownEngine, engine, strings.Join(Engines, ", "))
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	c := newConn(db, engine, dsn, logger)
	c.log.Info("connected", "engine", engine, "dsn", SanitizeDSN(dsn))
	if err := c.LoadSchema(ctx); err != nil {
		c.log.Warn("schema introspection failed", "error", err)
	}
	return c, nil
}

func newConn(db *sql.DB, engine, dsn string, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Conn{
		db:     db,
		dsn:    dsn,
		engine: engine,
		schema: schemaCache{columns: make(map[string][]string)},
		log:    logger,
	}
}

// Engine returns the engine name the connection was opened with. It is
// also the name of the matching visitors dialect.
func (c *Conn) Engine() string { return c.engine }

// DSN returns the connection string with any password masked.
func (c *Conn) DSN() string { return SanitizeDSN(c.dsn) }

// Close releases the underlying connection pool.
func (c *Conn) Close() error {
	c.log.Debug("disconnected", "engine", c.engine)
	return c.db.Close()
}

// Visitor returns a parameterizing visitor for the connection's engine.
func (c *Conn) Visitor() (visitors.SQLVisitor, error) {
	return visitors.ForDialect(c.engine, visitors.WithParams())
}

// PreviewSQL builds the statement that selects expr from tables and renders
// it with v. A limit outside 1..MaxRows is clamped to MaxRows. The
// statement asks for one row past limit so Preview can report truncation.
func PreviewSQL(v visitors.SQLVisitor, expr nodes.Node, tables []*nodes.Table, limit int) (string, []any) {
	if limit <= 0 || limit > MaxRows {
		limit = MaxRows
	}
	v.Reset()
	stmt := nodes.NewSelect(expr, ProjectionAlias, tables, limit+1)
	return stmt.Accept(v), v.Params()
}

// PreviewExpr renders expr for this connection's engine and runs it.
func (c *Conn) PreviewExpr(ctx context.Context, expr nodes.Node, tables []*nodes.Table, limit int) (*Result, error) {
	v, err := c.Visitor()
	if err != nil {
		return nil, err
	}
	query, params := PreviewSQL(v, expr, tables, limit)
	return c.Preview(ctx, query, params, limit)
}

// Preview runs query and reads at most limit rows (MaxRows when limit is
// not positive).
func (c *Conn) Preview(ctx context.Context, query string, params []any, limit int) (*Result, error) {
	if limit <= 0 || limit > MaxRows {
		limit = MaxRows
	}
	c.log.Debug("preview", "sql", query, "params", len(params))

	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return readRows(rows, limit)
}

func readRows(rows *sql.Rows, limit int) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	res := &Result{Columns: columns}
	for rows.Next() {
		if len(res.Rows) >= limit {
			res.Truncated = true
			break
		}
		vals := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return res, nil
}
