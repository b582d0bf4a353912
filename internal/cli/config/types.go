// Package config loads sqlterm settings from defaults, a YAML file,
// environment variables and command-line flags.
package config

import "github.com/bawdo/sqlterm/evaluator"

// Default values applied before any other source.
const (
	DefaultDialect = "ansi"
	DefaultFormat  = "sql"
	DefaultEngine  = "postgres"
	DefaultLimit   = 10
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "SQLTERM_"

// Output formats accepted by the eval command.
const (
	FormatSQL = "sql"
	FormatDOT = "dot"
)

// Config holds all CLI configuration options.
type Config struct {
	Tables      []evaluator.TableRef `koanf:"-"`
	Dialect     string               `koanf:"dialect"`
	Format      string               `koanf:"format"`
	Params      bool                 `koanf:"params"`
	Engine      string               `koanf:"engine"`
	DSN         string               `koanf:"dsn"`
	Limit       int                  `koanf:"limit"`
	Verbose     bool                 `koanf:"verbose"`
	HistoryFile string               `koanf:"history_file"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}
