package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bawdo/sqlterm/evaluator"
	"github.com/bawdo/sqlterm/internal/cli/config"
	"github.com/bawdo/sqlterm/nodes"
	"github.com/bawdo/sqlterm/visitors"
)

var errNoExpression = errors.New("no expression given (use --sql or pass it as arguments)")

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate an expression and print the rendered SQL",
		Long: `Parse a SQL expression fragment against the configured tables and print it
in the selected dialect, or as a Graphviz DOT graph with --format dot.`,
		Example: `  sqlterm eval --tables foo,bar:b --sql "bar.fizz != 1"
  sqlterm eval -t users:u -d postgres --params "u.name = 'Alice'"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			log := GetLogger(cmd.Context())

			node, _, err := evalExpression(cmd, cfg, args)
			if err != nil {
				return err
			}
			log.Debug("expression evaluated", "node", fmt.Sprintf("%T", node))

			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatDOT {
				dv := visitors.NewDotVisitor()
				node.Accept(dv)
				_, _ = fmt.Fprint(out, dv.ToDot())
				return nil
			}

			var opts []visitors.Option
			if cfg.Params {
				opts = append(opts, visitors.WithParams())
			}
			v, err := visitors.ForDialect(cfg.Dialect, opts...)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, node.Accept(v))
			if params := v.Params(); len(params) > 0 {
				_, _ = fmt.Fprintf(out, "Params: %v\n", params)
			}
			return nil
		},
	}

	cmd.Flags().String("sql", "", "Expression to evaluate")
	cmd.Flags().StringP("format", "f", "", "Output format (sql|dot)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatSQL, config.FormatDOT}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// evalExpression reads the expression from --sql or the positional
// arguments and evaluates it against the configured tables.
func evalExpression(cmd *cobra.Command, cfg *config.Config, args []string) (nodes.Node, *evaluator.Evaluator, error) {
	text, _ := cmd.Flags().GetString("sql")
	if !cmd.Flags().Changed("sql") {
		if len(args) == 0 {
			return nil, nil, errNoExpression
		}
		text = strings.Join(args, " ")
	}
	ev, err := evaluator.New(cfg.Tables...)
	if err != nil {
		return nil, nil, err
	}
	node, err := ev.Eval(text)
	if err != nil {
		return nil, nil, err
	}
	return node, ev, nil
}
