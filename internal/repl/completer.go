package repl

import (
	"sort"
	"strings"

	"github.com/bawdo/sqlterm/evaluator"
	"github.com/bawdo/sqlterm/internal/database"
	"github.com/bawdo/sqlterm/nodes"
	"github.com/bawdo/sqlterm/visitors"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand    completionContext = iota // start of line or partial command
	contextTableName                          // after untable
	contextDialect                            // after dialect
	contextEngine                             // after engine
	contextExpression                         // inside an expression
)

var scalarFunctionNames = []string{"COALESCE(", "CONCAT(", "LOWER(", "MOD(", "UPPER("}

// expressionWords lists keywords, function names and date parts offered
// inside an expression.
var expressionWords = func() []string {
	var words []string
	words = append(words, evaluator.Keywords()...)
	for _, name := range nodes.AggregateNames() {
		words = append(words, name+"(")
	}
	words = append(words, scalarFunctionNames...)
	words = append(words, nodes.DatePartNames()...)
	words = append(words, nodes.SQLTypeNames()...)
	sort.Strings(words)
	return dedup(words)
}()

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the prefix being completed.
// newLine contains the suffixes to append for each candidate.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = c.completeCommands(prefix)
		candidates = append(candidates, c.completeExpression(prefix)...)
	case contextTableName:
		candidates = c.completeRegisteredTables(prefix)
	case contextDialect:
		candidates = filterPrefix(visitors.Dialects, prefix)
	case contextEngine:
		candidates = filterPrefix(database.Engines, prefix)
	case contextExpression:
		candidates = c.completeExpression(prefix)
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		if !strings.HasSuffix(cand, "(") && !strings.HasSuffix(cand, ".") {
			// Add trailing space for convenience.
			suffix += " "
		}
		newLine = append(newLine, []rune(suffix))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to cursor and determines what kind of
// completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) {
			if cmd.completer == nil {
				return contextCommand, ""
			}
			return cmd.completer(line[len(cmd.prefix):])
		}
	}

	trimmed := strings.TrimLeft(line, " \t")
	if !strings.ContainsAny(trimmed, " \t") {
		return contextCommand, trimmed
	}
	// A bare line that is already past its first word is an expression.
	return contextExpression, lastToken(line)
}

// completeCommands returns command names matching the prefix.
func (c *replCompleter) completeCommands(prefix string) []string {
	if prefix == "" {
		return c.sess.commandNames()
	}
	return filterPrefix(c.sess.commandNames(), prefix)
}

// completeRegisteredTables returns only session-registered table names.
func (c *replCompleter) completeRegisteredTables(prefix string) []string {
	names := make([]string, 0, len(c.sess.tables))
	for _, t := range c.sess.tables {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

// completeExpression offers "table." qualifiers, column names of connected
// tables, keywords and function names.
func (c *replCompleter) completeExpression(prefix string) []string {
	if prefix == "" {
		return nil
	}
	if table, colPrefix, ok := strings.Cut(prefix, "."); ok {
		if c.sess.conn == nil {
			return nil
		}
		var candidates []string
		for _, col := range c.sess.conn.Columns(c.sess.ctx, table) {
			if strings.HasPrefix(strings.ToLower(col), strings.ToLower(colPrefix)) {
				candidates = append(candidates, table+"."+col)
			}
		}
		return candidates
	}

	var qualifiers []string
	for _, name := range c.completeRegisteredTables(prefix) {
		qualifiers = append(qualifiers, name+".")
	}
	return append(qualifiers, filterPrefix(expressionWords, prefix)...)
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// dedup removes adjacent duplicates from a sorted slice.
func dedup(items []string) []string {
	var result []string
	for i, item := range items {
		if i == 0 || item != items[i-1] {
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the last token, splitting on whitespace, commas and
// brackets.
func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " \t,()"); i >= 0 {
		return s[i+1:]
	}
	return s
}
