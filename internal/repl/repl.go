package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
)

const promptText = "sqlterm> "

// Config controls the interactive loop.
type Config struct {
	Session     Options
	DSN         string // connect on start when set
	HistoryFile string // defaults to ~/.sqlterm_history
}

// Run starts the readline loop and returns when the user exits or ctx is
// cancelled.
func Run(ctx context.Context, cfg Config) error {
	history := cfg.HistoryFile
	if history == "" {
		history = historyPath()
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          promptText,
		HistoryFile:     history,
		HistoryLimit:    500,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sess, err := NewSession(cfg.Session, rl)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	// Set up the completer now that we have a session.
	_ = rl.SetConfig(&readline.Config{
		Prompt:          promptText,
		HistoryFile:     history,
		HistoryLimit:    500,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})

	if cfg.DSN != "" {
		if err := sess.ExecuteContext(ctx, "connect "+cfg.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: connect failed: %v\n", err)
		}
	}

	fmt.Println("sqlterm REPL. Type 'help' for commands, 'exit' to quit.")
	if len(sess.tables) == 0 {
		fmt.Println("Register a table first: table <name> [alias]")
	}
	fmt.Println()

	for ctx.Err() == nil {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.ExecuteContext(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
	fmt.Println()
	return nil
}

// prompt prints a label with an optional default and returns the user's input
// (or the default if they press enter).
func prompt(rl *readline.Instance, label, defaultVal string) string {
	if rl == nil {
		return defaultVal
	}
	if defaultVal != "" {
		rl.SetPrompt(fmt.Sprintf("  %s [%s]: ", label, defaultVal))
	} else {
		rl.SetPrompt(fmt.Sprintf("  %s: ", label))
	}
	defer rl.SetPrompt(promptText)
	line, err := rl.ReadLine()
	if err != nil {
		return defaultVal
	}
	val := strings.TrimSpace(line)
	if val == "" {
		return defaultVal
	}
	return val
}

func buildSQLiteDSN(rl *readline.Instance) string {
	fmt.Println("  SQLite connection setup:")
	return prompt(rl, "Database path", ":memory:")
}

func buildPostgresDSN(rl *readline.Instance) string {
	fmt.Println("  PostgreSQL connection setup:")

	defaultUser := "postgres"
	if u, err := user.Current(); err == nil && u.Username != "" {
		defaultUser = u.Username
	}

	dbUser := prompt(rl, "User", defaultUser)
	dbPass := prompt(rl, "Password", "")
	host := prompt(rl, "Host", "localhost")
	port := prompt(rl, "Port", "5432")
	dbName := prompt(rl, "Database", dbUser)
	sslMode := prompt(rl, "SSL mode (disable/require/verify-full)", "disable")

	var userInfo *url.Userinfo
	if dbPass != "" {
		userInfo = url.UserPassword(dbUser, dbPass)
	} else {
		userInfo = url.User(dbUser)
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     host + ":" + port,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

func buildMySQLDSN(rl *readline.Instance) string {
	fmt.Println("  MySQL connection setup:")

	dbUser := prompt(rl, "User", "root")
	dbPass := prompt(rl, "Password", "")
	host := prompt(rl, "Host", "localhost")
	port := prompt(rl, "Port", "3306")
	dbName := prompt(rl, "Database", "")

	if dbName == "" {
		return ""
	}

	// Format: user:pass@tcp(host:port)/dbname
	auth := dbUser
	if dbPass != "" {
		auth = dbUser + ":" + dbPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s", auth, host, port, dbName)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlterm_history")
}
