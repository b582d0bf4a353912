package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bawdo/sqlterm/internal/database"
	"github.com/bawdo/sqlterm/visitors"
)

var formats = []string{FormatSQL, FormatDOT}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := visitors.ForDialect(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	if !slices.Contains(database.Engines, c.Engine) {
		return fmt.Errorf("unknown engine %q (want one of %s)", c.Engine, strings.Join(database.Engines, ", "))
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("unknown format %q (want one of %s)", c.Format, strings.Join(formats, ", "))
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	return nil
}
