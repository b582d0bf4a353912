// Package repl implements the interactive expression shell.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/ergochat/readline"

	"github.com/bawdo/sqlterm/evaluator"
	"github.com/bawdo/sqlterm/internal/database"
	"github.com/bawdo/sqlterm/nodes"
	"github.com/bawdo/sqlterm/visitors"
)

var (
	errNoTables     = errors.New("no tables registered (use 'table <name> [alias]' first)")
	errNoExpression = errors.New("no expression evaluated yet")
	errNotConnected = errors.New("not connected (use 'connect <dsn>' first)")
)

// Options seeds a new Session.
type Options struct {
	Tables  []evaluator.TableRef
	Dialect string
	Params  bool
	Engine  string
	Limit   int
	Logger  *slog.Logger
}

// Session holds the REPL state: registered tables, the active dialect
// visitor, the last evaluated expression and an optional connection.
type Session struct {
	tables       []evaluator.TableRef
	ev           *evaluator.Evaluator // nil while no tables are registered
	dialect      string
	visitor      visitors.SQLVisitor
	parameterize bool
	engine       string
	limit        int
	last         nodes.Node
	commands     []commandEntry // command registry (sorted by prefix length desc)
	conn         *database.Conn // nil when disconnected
	lastDSN      string         // remembers the previous DSN for reconnect
	open         func(ctx context.Context, engine, dsn string) (*database.Conn, error)
	ctx          context.Context
	rl           *readline.Instance
	out          io.Writer // destination for REPL output (default os.Stdout)
	log          *slog.Logger
}

// NewSession creates a session. rl may be nil, in which case interactive
// prompts fall back to their defaults.
func NewSession(opts Options, rl *readline.Instance) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		parameterize: opts.Params,
		engine:       opts.Engine,
		limit:        opts.Limit,
		ctx:          context.Background(),
		rl:           rl,
		out:          os.Stdout,
		log:          logger,
	}
	if s.engine == "" {
		s.engine = "postgres"
	}
	if s.limit <= 0 {
		s.limit = 10
	}
	s.open = func(ctx context.Context, engine, dsn string) (*database.Conn, error) {
		return database.Open(ctx, engine, dsn, s.log)
	}
	if err := s.setDialect(opts.Dialect); err != nil {
		return nil, err
	}
	if err := s.setTables(opts.Tables); err != nil {
		return nil, err
	}
	s.initCommands()
	return s, nil
}

// SetOutput redirects REPL output.
func (s *Session) SetOutput(w io.Writer) { s.out = w }

// Close releases the database connection, if any.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Session) setDialect(name string) error {
	if name == "" {
		name = "ansi"
	}
	var opts []visitors.Option
	if s.parameterize {
		opts = append(opts, visitors.WithParams())
	}
	v, err := visitors.ForDialect(name, opts...)
	if err != nil {
		return err
	}
	s.dialect = strings.ToLower(name)
	s.visitor = v
	return nil
}

// setTables replaces the table list. The previous list is kept when the new
// one is invalid.
func (s *Session) setTables(refs []evaluator.TableRef) error {
	if len(refs) == 0 {
		s.tables, s.ev, s.last = nil, nil, nil
		return nil
	}
	ev, err := evaluator.New(refs...)
	if err != nil {
		return err
	}
	s.tables = refs
	s.ev = ev
	s.last = nil
	return nil
}

// Execute runs a single REPL line: a command, or else an expression.
func (s *Session) Execute(line string) error {
	return s.ExecuteContext(context.Background(), line)
}

// ExecuteContext is Execute with a context for database commands.
func (s *Session) ExecuteContext(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	s.ctx = ctx
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(line[len(cmd.prefix):])
			}
		} else if lower == cmd.prefix {
			return cmd.handler("")
		}
	}
	return s.cmdEval(line)
}

// --- Command handlers ---

func (s *Session) cmdEval(text string) error {
	if s.ev == nil {
		return errNoTables
	}
	node, err := s.ev.Eval(text)
	if err != nil {
		return err
	}
	s.last = node
	s.visitor.Reset()
	sql := node.Accept(s.visitor)
	_, _ = fmt.Fprintf(s.out, "  %s\n", sql)
	if params := s.visitor.Params(); len(params) > 0 {
		_, _ = fmt.Fprintf(s.out, "  Params: %v\n", params)
	}
	return nil
}

func (s *Session) cmdTable(args string) error {
	parts := strings.Fields(args)
	var ref evaluator.TableRef
	switch len(parts) {
	case 1:
		name, alias, _ := strings.Cut(parts[0], ":")
		ref = evaluator.TableRef{Name: name, Alias: alias}
	case 2:
		ref = evaluator.TableRef{Name: parts[0], Alias: parts[1]}
	default:
		return errors.New("usage: table <name> [alias]")
	}
	if !isIdentifier(ref.Name) || (ref.Alias != "" && !isIdentifier(ref.Alias)) {
		return fmt.Errorf("invalid table %q (use 'expr <expression>' to evaluate)", ref)
	}

	refs := make([]evaluator.TableRef, 0, len(s.tables)+1)
	replaced := false
	for _, t := range s.tables {
		if t.Name == ref.Name {
			refs = append(refs, ref)
			replaced = true
			continue
		}
		refs = append(refs, t)
	}
	if !replaced {
		refs = append(refs, ref)
	}
	if err := s.setTables(refs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  Registered table %s\n", ref)
	return nil
}

func (s *Session) cmdUntable(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: untable <name>")
	}
	refs := make([]evaluator.TableRef, 0, len(s.tables))
	for _, t := range s.tables {
		if t.Name != name {
			refs = append(refs, t)
		}
	}
	if len(refs) == len(s.tables) {
		return fmt.Errorf("table %q is not registered", name)
	}
	if err := s.setTables(refs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  Removed table %q\n", name)
	return nil
}

func (s *Session) cmdTables() error {
	if len(s.tables) == 0 {
		_, _ = fmt.Fprintln(s.out, "  No tables registered")
		return nil
	}
	for _, t := range s.tables {
		alias := t.Alias
		if alias == "" {
			alias = t.Name
		}
		_, _ = fmt.Fprintf(s.out, "  table: %s (alias %s)\n", t.Name, alias)
	}
	return nil
}

func (s *Session) cmdDialect(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		_, _ = fmt.Fprintf(s.out, "  Dialect: %s\n", s.dialect)
		return nil
	}
	if err := s.setDialect(name); err != nil {
		return err
	}
	s.log.Debug("dialect changed", "dialect", s.dialect)
	_, _ = fmt.Fprintf(s.out, "  Dialect set to %s\n", s.dialect)
	return nil
}

func (s *Session) cmdEngine(args string) error {
	name := strings.TrimSpace(strings.ToLower(args))
	if !isValidEngine(name) {
		return fmt.Errorf("unknown engine %q (choose: %s)", name, strings.Join(database.Engines, ", "))
	}
	s.engine = name
	_, _ = fmt.Fprintf(s.out, "  Engine set to %s\n", s.engine)
	return nil
}

func (s *Session) cmdParameterize() error {
	s.parameterize = !s.parameterize
	if err := s.setDialect(s.dialect); err != nil { // recreate visitor with/without parameterization
		return err
	}
	if s.parameterize {
		_, _ = fmt.Fprintln(s.out, "  Parameterized output enabled")
	} else {
		_, _ = fmt.Fprintln(s.out, "  Parameterized output disabled")
	}
	return nil
}

func (s *Session) cmdLimit(args string) error {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n <= 0 || n > database.MaxRows {
		return fmt.Errorf("limit must be between 1 and %d", database.MaxRows)
	}
	s.limit = n
	_, _ = fmt.Fprintf(s.out, "  Preview limit set to %d\n", n)
	return nil
}

// cmdDot exports the last expression tree as a Graphviz DOT file.
func (s *Session) cmdDot(args string) error {
	fpath := strings.TrimSpace(args)
	if fpath == "" {
		return errors.New("usage: dot <filepath>")
	}
	if s.last == nil {
		return errNoExpression
	}
	dv := visitors.NewDotVisitor()
	s.last.Accept(dv)
	if err := os.WriteFile(fpath, []byte(dv.ToDot()), 0600); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	_, _ = fmt.Fprintf(s.out, "  Wrote DOT to %s\n", fpath)
	return nil
}

func (s *Session) cmdConnect(args string) error {
	dsn := strings.TrimSpace(args)

	if s.conn != nil {
		return fmt.Errorf("already connected to %s (use 'disconnect' first)", s.conn.DSN())
	}

	// Direct DSN provided: connect immediately.
	if dsn != "" {
		return s.connectWithDSN(dsn)
	}

	// Interactive: offer reconnect if we have a previous DSN, otherwise wizard.
	if s.lastDSN != "" {
		choice := prompt(s.rl, fmt.Sprintf("Reconnect to %s? (y/n/setup)", database.SanitizeDSN(s.lastDSN)), "y")
		switch strings.ToLower(choice) {
		case "y", "yes":
			return s.connectWithDSN(s.lastDSN)
		case "s", "setup":
			return s.connectViaWizard()
		default:
			_, _ = fmt.Fprintln(s.out, "  Connect cancelled")
			return nil
		}
	}
	if s.rl == nil {
		return errors.New("usage: connect <dsn>")
	}
	return s.connectViaWizard()
}

func (s *Session) connectWithDSN(dsn string) error {
	conn, err := s.open(s.ctx, s.engine, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.conn = conn
	s.lastDSN = dsn
	_, _ = fmt.Fprintf(s.out, "  Connected to %s (%s)\n", database.SanitizeDSN(dsn), s.engine)
	return nil
}

func (s *Session) connectViaWizard() error {
	var dsn string
	switch s.engine {
	case "sqlite":
		dsn = buildSQLiteDSN(s.rl)
	case "mysql":
		dsn = buildMySQLDSN(s.rl)
	default:
		dsn = buildPostgresDSN(s.rl)
	}

	if dsn == "" {
		_, _ = fmt.Fprintln(s.out, "  No connection configured")
		return nil
	}

	_, _ = fmt.Fprintf(s.out, "  DSN: %s\n", database.SanitizeDSN(dsn))
	return s.connectWithDSN(dsn)
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	dsn := s.conn.DSN()
	if err := s.Close(); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	_, _ = fmt.Fprintf(s.out, "  Disconnected from %s\n", dsn)
	return nil
}

// cmdPreview evaluates args (or reuses the last expression) and selects it
// from the registered tables on the connected database, always with bind
// parameters.
func (s *Session) cmdPreview(args string) error {
	if s.conn == nil {
		return errNotConnected
	}
	if s.ev == nil {
		return errNoTables
	}
	node := s.last
	if text := strings.TrimSpace(args); text != "" {
		var err error
		if node, err = s.ev.Eval(text); err != nil {
			return err
		}
		s.last = node
	}
	if node == nil {
		return errNoExpression
	}

	v, err := s.conn.Visitor()
	if err != nil {
		return err
	}
	if s.conn.Engine() != s.dialect && s.dialect != "ansi" {
		_, _ = fmt.Fprintf(s.out, "  Warning: connected to %s but dialect is set to %s\n", s.conn.Engine(), s.dialect)
	}
	query, params := database.PreviewSQL(v, node, s.ev.Tables(), s.limit)
	_, _ = fmt.Fprintf(s.out, "  %s;\n", query)
	if len(params) > 0 {
		_, _ = fmt.Fprintf(s.out, "  Params: %v\n", params)
	}

	res, err := s.conn.Preview(s.ctx, query, params, s.limit)
	if err != nil {
		return err
	}
	res.Render(s.out)
	return nil
}

func (s *Session) cmdStatus() {
	_, _ = fmt.Fprintf(s.out, "  Dialect: %s\n", s.dialect)
	_, _ = fmt.Fprintf(s.out, "  Engine: %s\n", s.engine)
	_, _ = fmt.Fprintf(s.out, "  Parameterized: %t\n", s.parameterize)
	_, _ = fmt.Fprintf(s.out, "  Preview limit: %d\n", s.limit)
	if s.conn != nil {
		_, _ = fmt.Fprintf(s.out, "  Connected: %s\n", s.conn.DSN())
	} else {
		_, _ = fmt.Fprintln(s.out, "  Connected: no")
	}
}

func (s *Session) cmdHelp() {
	_, _ = fmt.Fprintln(s.out, `
  Expressions:
    <expression>              Evaluate and render an expression
    expr <expression>         Same, for expressions that start like a command

  Tables:
    table <name> [alias]      Register a table (also name:alias)
    untable <name>            Remove a registered table
    tables                    List registered tables

  Output:
    dialect [name]            Show or set the dialect (ansi, postgres, mysql, sqlite)
    params                    Toggle bind parameter output
    dot <filepath>            Export the last expression as a Graphviz DOT file
    status                    Show session settings

  Database:
    engine <name>             Set the engine used by connect (postgres, mysql, sqlite)
    connect [dsn]             Connect to a database
    disconnect                Close the connection
    preview [expression]      Run SELECT <expression> FROM <tables> against the database
    limit <n>                 Set the preview row limit

  Other:
    help                      Show this help
    exit, quit                Leave the REPL`)
}

// isIdentifier reports whether s is a bare SQL identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func isValidEngine(engine string) bool {
	for _, e := range database.Engines {
		if e == engine {
			return true
		}
	}
	return false
}
