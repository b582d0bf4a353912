// Package cli provides the command-line interface for sqlterm.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bawdo/sqlterm/internal/cli/config"
	"github.com/bawdo/sqlterm/visitors"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlterm",
		Short: "Translate SQL expression fragments into expression trees",
		Long: `sqlterm parses SQL expression fragments (the text that appears in a SELECT
list or WHERE clause) against a list of tables and renders them for a SQL dialect.

Column references are resolved to table aliases, so "bar.fizz != 1" against
the tables foo,bar:b renders as "b"."fizz"<>1.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg.Verbose)
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			logger.Debug("configuration loaded", "dialect", cfg.Dialect, "engine", cfg.Engine, "tables", len(cfg.Tables))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./sqlterm.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringSliceP("tables", "t", nil, "Tables as name[:alias], comma-separated (e.g. foo,bar:b)")
	pf.StringP("dialect", "d", "", "Output dialect (ansi|postgres|mysql|sqlite)")
	pf.Bool("params", false, "Render literals as bind parameters")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return visitors.Dialects, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewEvalCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewReplCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger writes text logs to the command's stderr: debug and up with
// --verbose, warnings and up otherwise.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Dialect: config.DefaultDialect,
		Format:  config.DefaultFormat,
		Engine:  config.DefaultEngine,
		Limit:   config.DefaultLimit,
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
