package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bawdo/sqlterm/internal/database"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [expression]",
		Short: "Run an expression against a database and print the rows",
		Long: `Evaluate an expression and run SELECT <expression> AS "expr" FROM <tables>
LIMIT n on the configured database. Literals are always sent as bind parameters.

The DSN comes from --dsn, SQLTERM_DSN or DATABASE_URL.`,
		Example: `  sqlterm preview --engine sqlite --dsn app.db -t users:u "u.age >= 18"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)
			log := GetLogger(ctx)

			if cfg.DSN == "" {
				return errors.New("no database configured (use --dsn, SQLTERM_DSN or DATABASE_URL)")
			}
			node, ev, err := evalExpression(cmd, cfg, args)
			if err != nil {
				return err
			}

			conn, err := database.Open(ctx, cfg.Engine, cfg.DSN, log)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			res, err := conn.PreviewExpr(ctx, node, ev.Tables(), cfg.Limit)
			if err != nil {
				return err
			}
			res.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().String("sql", "", "Expression to preview")
	addDatabaseFlags(cmd)
	return cmd
}

// addDatabaseFlags registers the connection flags shared by preview and repl.
func addDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine", "", "Database engine (postgres|mysql|sqlite)")
	cmd.Flags().String("dsn", "", "Database connection string")
	cmd.Flags().Int("limit", 0, "Maximum rows to fetch")
	_ = cmd.RegisterFlagCompletionFunc("engine", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return database.Engines, cobra.ShellCompDirectiveNoFileComp
	})
}
