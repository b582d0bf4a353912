package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqlterm/evaluator"
)

// newFlags mirrors the flags the CLI registers.
func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("tables", nil, "")
	fs.String("dialect", "", "")
	fs.String("format", "", "")
	fs.Bool("params", false, "")
	fs.String("engine", "", "")
	fs.String("dsn", "", "")
	fs.Int("limit", 0, "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("history-file", "", "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlterm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultEngine, cfg.Engine)
	assert.Equal(t, DefaultLimit, cfg.Limit)
	assert.False(t, cfg.Params)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Tables)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
dialect: Postgres
params: true
engine: sqlite
dsn: /tmp/app.db
limit: 50
history_file: /tmp/hist
tables:
  - foo
  - bar:b
  - name: baz
    alias: z
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.True(t, cfg.Params)
	assert.Equal(t, "sqlite", cfg.Engine)
	assert.Equal(t, "/tmp/app.db", cfg.DSN)
	assert.Equal(t, 50, cfg.Limit)
	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
	assert.Equal(t, []evaluator.TableRef{
		{Name: "foo"},
		{Name: "bar", Alias: "b"},
		{Name: "baz", Alias: "z"},
	}, cfg.Tables)
}

func TestLoad_FileTablesString(t *testing.T) {
	path := writeConfig(t, "tables: foo, bar:b\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []evaluator.TableRef{{Name: "foo"}, {Name: "bar", Alias: "b"}}, cfg.Tables)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SQLTERM_DIALECT", "mysql")
	t.Setenv("SQLTERM_PARAMS", "true")
	t.Setenv("SQLTERM_TABLES", "foo:f")
	t.Setenv("SQLTERM_HISTORY_FILE", "/tmp/h")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.True(t, cfg.Params)
	assert.Equal(t, "/tmp/h", cfg.HistoryFile)
	assert.Equal(t, []evaluator.TableRef{{Name: "foo", Alias: "f"}}, cfg.Tables)
}

func TestLoad_DatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/app", cfg.DSN)

	t.Setenv("SQLTERM_DSN", "postgres://localhost/other")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/other", cfg.DSN)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\nengine: mysql\nlimit: 5\n")
	t.Setenv("SQLTERM_DIALECT", "sqlite")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--limit", "7", "--tables", "a,b:x"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect, "env overrides file")
	assert.Equal(t, "mysql", cfg.Engine, "unset flag does not override file")
	assert.Equal(t, 7, cfg.Limit, "flag overrides file")
	assert.Equal(t, []evaluator.TableRef{{Name: "a"}, {Name: "b", Alias: "x"}}, cfg.Tables)

	flags = newFlags()
	require.NoError(t, flags.Parse([]string{"--dialect", "ansi", "--history-file", "/tmp/x"}))
	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect, "flag overrides env")
	assert.Equal(t, "/tmp/x", cfg.HistoryFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"dialect", "dialect: oracle\n", "invalid dialect"},
		{"engine", "engine: oracle\n", "unknown engine"},
		{"format", "format: json\n", "unknown format"},
		{"limit", "limit: 0\n", "limit must be positive"},
		{"table without name", "tables:\n  - alias: x\n", "name is required"},
		{"table entry type", "tables:\n  - 3\n", "unexpected value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoad_InvalidTableList(t *testing.T) {
	_, err := Load(writeConfig(t, "tables: \":b\"\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, evaluator.ErrConfig)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Dialect: "postgresql", Engine: "sqlite", Format: FormatDOT, Limit: 1}
	assert.NoError(t, cfg.Validate())
}
