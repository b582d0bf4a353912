package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/bawdo/sqlterm/evaluator"
)

// configFileNames are searched in the working directory when no explicit
// config file is given.
var configFileNames = []string{"sqlterm.yaml", "sqlterm.yml"}

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlterm.yaml > sqlterm.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set override other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"dialect": DefaultDialect,
		"format":  DefaultFormat,
		"params":  false,
		"engine":  DefaultEngine,
		"limit":   DefaultLimit,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment. DATABASE_URL is loaded first so SQLTERM_DSN wins.
	if err := k.Load(env.Provider("DATABASE_URL", ".", func(s string) string {
		if s == "DATABASE_URL" {
			return "dsn"
		}
		return ""
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	// SQLTERM_HISTORY_FILE -> history_file
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	tables, err := parseTables(k.Get("tables"))
	if err != nil {
		return nil, err
	}
	cfg.Tables = tables
	cfg.File = used
	cfg.Dialect = strings.ToLower(strings.TrimSpace(cfg.Dialect))
	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseTables accepts the forms a table list takes in each source: a
// "foo,bar:b" string (env), a string slice (flags) or a YAML list of
// strings and {name, alias} maps.
func parseTables(v any) ([]evaluator.TableRef, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case string:
		return evaluator.ParseTableRefs(tv)
	case []string:
		return evaluator.ParseTableRefs(strings.Join(tv, ","))
	case []any:
		var refs []evaluator.TableRef
		for i, item := range tv {
			switch it := item.(type) {
			case string:
				more, err := evaluator.ParseTableRefs(it)
				if err != nil {
					return nil, err
				}
				refs = append(refs, more...)
			case map[string]any:
				name, _ := it["name"].(string)
				alias, _ := it["alias"].(string)
				if name == "" {
					return nil, fmt.Errorf("tables[%d]: name is required", i)
				}
				refs = append(refs, evaluator.TableRef{Name: name, Alias: alias})
			default:
				return nil, fmt.Errorf("tables[%d]: unexpected value %v", i, item)
			}
		}
		return refs, nil
	default:
		return nil, fmt.Errorf("tables: unexpected value %v", v)
	}
}
