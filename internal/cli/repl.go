package cli

import (
	"github.com/spf13/cobra"

	"github.com/bawdo/sqlterm/internal/repl"
)

// NewReplCommand creates the interactive repl command.
func NewReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive expression shell",
		Long: `Start a readline shell. Lines are evaluated as expressions against the
registered tables; type 'help' for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			return repl.Run(cmd.Context(), repl.Config{
				Session: repl.Options{
					Tables:  cfg.Tables,
					Dialect: cfg.Dialect,
					Params:  cfg.Params,
					Engine:  cfg.Engine,
					Limit:   cfg.Limit,
					Logger:  GetLogger(cmd.Context()),
				},
				DSN:         cfg.DSN,
				HistoryFile: cfg.HistoryFile,
			})
		},
	}

	addDatabaseFlags(cmd)
	cmd.Flags().String("history-file", "", "REPL history file (default: ~/.sqlterm_history)")
	return cmd
}
