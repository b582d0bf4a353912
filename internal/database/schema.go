package database

import (
	"context"
	"fmt"
)

type schemaCache struct {
	tables  []string
	columns map[string][]string // table name -> column names
}

// LoadSchema reads the table names of the connected database. Column names
// are read per table on demand by Columns.
func (c *Conn) LoadSchema(ctx context.Context) error {
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case "sqlite":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return fmt.Errorf("%w %q", ErrUnknownEngine, c.engine)
	}
	tables, err := c.queryStringColumn(ctx, query)
	if err != nil {
		return err
	}
	c.schema.tables = tables
	return nil
}

// Tables returns the table names found by LoadSchema.
func (c *Conn) Tables() []string {
	return c.schema.tables
}

// Columns returns the column names of table, querying the database the
// first time a table is asked for. Errors yield no columns.
func (c *Conn) Columns(ctx context.Context, table string) []string {
	if cols, ok := c.schema.columns[table]; ok {
		return cols
	}
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position"
	case "mysql":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
	case "sqlite":
		query = "SELECT name FROM pragma_table_info(?)"
	default:
		return nil
	}
	cols, err := c.queryStringColumn(ctx, query, table)
	if err != nil {
		c.log.Debug("column introspection failed", "table", table, "error", err)
		return nil
	}
	c.schema.columns[table] = cols
	return cols
}

func (c *Conn) queryStringColumn(ctx context.Context, query string, params ...any) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
