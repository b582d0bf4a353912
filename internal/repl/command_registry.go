package repl

import (
	"errors"
	"sort"
	"strings"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- tables ---
		{prefix: "table ", handler: s.cmdTable},
		{prefix: "table", handler: func(_ string) error { return errors.New("usage: table <name> [alias]") }},
		{prefix: "untable ", handler: s.cmdUntable, completer: completeTableArgs},
		{prefix: "untable", handler: func(_ string) error { return errors.New("usage: untable <name>") }},
		{prefix: "tables", handler: func(_ string) error { return s.cmdTables() }},

		// --- output ---
		{prefix: "dialect ", handler: s.cmdDialect, completer: completeDialectArgs},
		{prefix: "dialect", handler: s.cmdDialect},
		{prefix: "params", handler: func(_ string) error { return s.cmdParameterize() }},
		{prefix: "parameterize", handler: func(_ string) error { return s.cmdParameterize() }, hidden: true},
		{prefix: "dot ", handler: s.cmdDot},
		{prefix: "dot", handler: func(_ string) error { return errors.New("usage: dot <filepath>") }},
		{prefix: "expr ", handler: s.cmdEval, completer: completeExpressionArgs},
		{prefix: "status", handler: func(_ string) error { s.cmdStatus(); return nil }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- database connectivity ---
		{prefix: "engine ", handler: s.cmdEngine, completer: completeEngineArgs},
		{prefix: "connect ", handler: s.cmdConnect},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "preview ", handler: s.cmdPreview, completer: completeExpressionArgs},
		{prefix: "preview", handler: func(_ string) error { return s.cmdPreview("") }},
		{prefix: "limit ", handler: s.cmdLimit},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// --- Shared completion helpers ---

// completeTableArgs completes a single registered table name.
func completeTableArgs(args string) (completionContext, string) {
	return contextTableName, strings.TrimSpace(args)
}

// completeDialectArgs completes dialect names.
func completeDialectArgs(args string) (completionContext, string) {
	return contextDialect, strings.TrimSpace(args)
}

// completeEngineArgs completes engine names.
func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

// completeExpressionArgs completes the token under the cursor inside an
// expression.
func completeExpressionArgs(args string) (completionContext, string) {
	return contextExpression, lastToken(args)
}
