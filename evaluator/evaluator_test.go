package evaluator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bawdo/sqlterm/internal/testutil"
	"github.com/bawdo/sqlterm/nodes"
	"github.com/bawdo/sqlterm/visitors"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ev, err := New(TableRef{Name: "foo", Alias: "foo"}, TableRef{Name: "bar", Alias: "b"})
	testutil.AssertNoError(t, err)
	return ev
}

// assertEval evaluates expr, checks the node type and the ANSI rendering.
func assertEval[T nodes.Node](t *testing.T, ev *Evaluator, expr, want string) T {
	t.Helper()
	n, err := ev.Eval(expr)
	if err != nil {
		t.Fatalf("Eval(%q): unexpected error: %v", expr, err)
	}
	typed, ok := n.(T)
	if !ok {
		var zero T
		t.Fatalf("Eval(%q): expected %T, got %T", expr, zero, n)
	}
	testutil.AssertSQL(t, visitors.NewANSIVisitor(), n, want)
	return typed
}

// --- Fields and literals ---

func TestEvalFields(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	tests := []struct {
		expr string
		want string
	}{
		{"foo.fizz", `"foo"."fizz"`},
		{`foo."fizz"`, `"foo"."fizz"`},
		{"foo.fizz\n", `"foo"."fizz"`},
		{"foo.fizz\n ", `"foo"."fizz"`},
		{"  \tbar.fizz\r\n", `"b"."fizz"`},
		{`"foo".fizz`, `"foo"."fizz"`},
		{`foo."we""ird"`, `"foo"."we""ird"`},
		{"foo.desc", `"foo"."desc"`},
		{"foo.year", `"foo"."year"`},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			assertEval[*nodes.Attribute](t, ev, tt.expr, tt.want)
		})
	}
}

func TestEvalSingleTableUnqualified(t *testing.T) {
	t.Parallel()
	ev, err := New(TableRef{Name: "foo", Alias: "f"})
	testutil.AssertNoError(t, err)
	attr := assertEval[*nodes.Attribute](t, ev, "fizz", `"f"."fizz"`)
	testutil.AssertEqual(t, attr.Relation.Name, "foo")
	assertEval[*nodes.Attribute](t, ev, `"year"`, `"f"."year"`)
}

func TestEvalLiterals(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	tests := []struct {
		expr string
		want string
		kind nodes.LiteralKind
	}{
		{"1", "1", nodes.KindInteger},
		{"1.0", "1.0", nodes.KindFloat},
		{"-3", "-3", nodes.KindInteger},
		{"- 2.5", "-2.5", nodes.KindFloat},
		{".5", "0.5", nodes.KindFloat},
		{"1e3", "1000.0", nodes.KindFloat},
		{"'it''s'", "'it''s'", nodes.KindString},
		{"null", "NULL", nodes.KindNull},
		{"NULL", "NULL", nodes.KindNull},
		{"Null", "NULL", nodes.KindNull},
		{"true", "true", nodes.KindBoolean},
		{"TRUE", "true", nodes.KindBoolean},
		{"True", "true", nodes.KindBoolean},
		{"false", "false", nodes.KindBoolean},
		{"FALSE", "false", nodes.KindBoolean},
		{"False", "false", nodes.KindBoolean},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			lit := assertEval[*nodes.LiteralNode](t, ev, tt.expr, tt.want)
			if lit.Kind() != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, lit.Kind())
			}
		})
	}
}

func TestEvalStringKeepsRawText(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	lit := assertEval[*nodes.LiteralNode](t, ev, `'a\b'`, `'a\b'`)
	testutil.AssertEqual[any](t, lit.Value, `a\b`)
}

func TestEvalBracketAndNot(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.GroupingNode](t, ev, "(foo.fizz)", `("foo"."fizz")`)
	assertEval[*nodes.NotNode](t, ev, "NOT foo.fizz", `NOT "foo"."fizz"`)
	assertEval[*nodes.NotNode](t, ev, "not not foo.fizz", `NOT NOT "foo"."fizz"`)
}

// --- Concatenation ---

func TestEvalConcat(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.ConcatNode](t, ev, "foo.fizz || foo.fizz", `CONCAT("foo"."fizz","foo"."fizz")`)
	c := assertEval[*nodes.ConcatNode](t, ev, "foo.fizz || foo.fizz || foo.fizz", `CONCAT("foo"."fizz","foo"."fizz","foo"."fizz")`)
	testutil.AssertEqual(t, len(c.Parts), 3)
	assertEval[*nodes.ConcatNode](t, ev, "concat(foo.a, 'x', foo.b)", `CONCAT("foo"."a",'x',"foo"."b")`)
	assertEval[*nodes.ConcatNode](t, ev, "foo.a || 'x' || bar.b || 1", `CONCAT("foo"."a",'x',"b"."b",1)`)
}

// --- Comparisons and predicates ---

func TestEvalComparisons(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.ComparisonNode](t, ev, "foo.fizz = 1", `"foo"."fizz"=1`)
	assertEval[*nodes.ComparisonNode](t, ev, "bar.fizz = 1", `"b"."fizz"=1`)
	assertEval[*nodes.ComparisonNode](t, ev, "bar.fizz != 1", `"b"."fizz"<>1`)
	for _, op := range []string{"=", "<>", "<=", "<", ">=", ">"} {
		assertEval[*nodes.ComparisonNode](t, ev, fmt.Sprintf("bar.fizz %s 1", op), fmt.Sprintf(`"b"."fizz"%s1`, op))
	}
}

func TestEvalComparisonChainIsLeftAssociative(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	c := assertEval[*nodes.ComparisonNode](t, ev, "foo.a = foo.b = true", `"foo"."a"="foo"."b"=true`)
	if _, ok := c.Left.(*nodes.ComparisonNode); !ok {
		t.Errorf("expected left operand to be a comparison, got %T", c.Left)
	}
}

func TestEvalPatternMatch(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	for _, op := range []string{"LIKE", "NOT LIKE", "ILIKE", "NOT ILIKE"} {
		assertEval[*nodes.MatchNode](t, ev, fmt.Sprintf("bar.fizz %s '1%%'", op), fmt.Sprintf(`"b"."fizz" %s '1%%'`, op))
	}
	assertEval[*nodes.MatchNode](t, ev, "bar.fizz not like 'a'", `"b"."fizz" NOT LIKE 'a'`)
}

func TestEvalNullTests(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.NullTestNode](t, ev, "bar.fizz IS NULL", `"b"."fizz" IS NULL`)
	n := assertEval[*nodes.NotNode](t, ev, "bar.fizz IS NOT NULL", `NOT "b"."fizz" IS NULL`)
	if _, ok := n.Expr.(*nodes.NullTestNode); !ok {
		t.Errorf("expected NullTestNode inside NOT, got %T", n.Expr)
	}
}

func TestEvalIn(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	for _, op := range []string{"IN", "NOT IN"} {
		assertEval[*nodes.InNode](t, ev, fmt.Sprintf("bar.fizz %s (1, 2)", op), fmt.Sprintf(`"b"."fizz" %s (1,2)`, op))
	}
	in := assertEval[*nodes.InNode](t, ev, "bar.fizz in ('a', -1, null, true)", `"b"."fizz" IN ('a',-1,NULL,true)`)
	testutil.AssertEqual(t, len(in.Vals), 4)
}

func TestEvalBetween(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.BetweenNode](t, ev, "foo.fizz BETWEEN 1 AND 2", `"foo"."fizz" BETWEEN 1 AND 2`)
	assertEval[*nodes.NotNode](t, ev, "foo.fizz NOT BETWEEN 1 AND 2", `NOT "foo"."fizz" BETWEEN 1 AND 2`)

	// BETWEEN consumes its own AND; the second AND combines.
	l := assertEval[*nodes.LogicalNode](t, ev, "foo.fizz BETWEEN 1 AND 2 AND bar.x = 3", `"foo"."fizz" BETWEEN 1 AND 2 AND "b"."x"=3`)
	if _, ok := l.Left.(*nodes.BetweenNode); !ok {
		t.Errorf("expected BETWEEN on the left, got %T", l.Left)
	}
}

// --- Boolean combination ---

func TestEvalLogical(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.LogicalNode](t, ev, "foo.fizz = 1 OR foo.fizz = 2", `"foo"."fizz"=1 OR "foo"."fizz"=2`)
	assertEval[*nodes.LogicalNode](t, ev, "foo.fizz >= 1 AND foo.fizz <= 2", `"foo"."fizz">=1 AND "foo"."fizz"<=2`)
	assertEval[*nodes.GroupingNode](t, ev, "(foo.fizz = 1 OR foo.fizz = 2)", `("foo"."fizz"=1 OR "foo"."fizz"=2)`)
}

func TestEvalAndBindsTighterThanOr(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	or := assertEval[*nodes.LogicalNode](t, ev, "foo.a = 1 OR foo.b = 2 AND foo.c = 3", `"foo"."a"=1 OR "foo"."b"=2 AND "foo"."c"=3`)
	testutil.AssertEqual(t, or.Op, nodes.OpOr)
	right, ok := or.Right.(*nodes.LogicalNode)
	if !ok || right.Op != nodes.OpAnd {
		t.Errorf("expected AND on the right of OR, got %#v", or.Right)
	}
}

func TestEvalNotBindsLooserThanComparison(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	n := assertEval[*nodes.NotNode](t, ev, "NOT foo.a = 1", `NOT "foo"."a"=1`)
	if _, ok := n.Expr.(*nodes.ComparisonNode); !ok {
		t.Errorf("expected comparison inside NOT, got %T", n.Expr)
	}
}

// --- Arithmetic ---

func TestEvalArithmetic(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.ModNode](t, ev, "bar.fizz % 1", `MOD("b"."fizz",1)`)
	assertEval[*nodes.ModNode](t, ev, "mod(bar.fizz, 1)", `MOD("b"."fizz",1)`)
	for _, op := range []string{"+", "-", "*", "/"} {
		assertEval[*nodes.InfixNode](t, ev, fmt.Sprintf("bar.fizz %s 1", op), fmt.Sprintf(`"b"."fizz"%s1`, op))
	}
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	n := assertEval[*nodes.InfixNode](t, ev, "foo.a + foo.b * 2", `"foo"."a"+"foo"."b"*2`)
	testutil.AssertEqual(t, n.Op, nodes.OpPlus)
	assertEval[*nodes.InfixNode](t, ev, "(foo.a + foo.b) * 2", `("foo"."a"+"foo"."b")*2`)
	n = assertEval[*nodes.InfixNode](t, ev, "foo.a - foo.b - 1", `"foo"."a"-"foo"."b"-1`)
	if _, ok := n.Left.(*nodes.InfixNode); !ok {
		t.Errorf("expected left-associative subtraction, got left %T", n.Left)
	}
	assertEval[*nodes.ComparisonNode](t, ev, "foo.a + 1 > foo.b * 2", `"foo"."a"+1>"foo"."b"*2`)
	assertEval[*nodes.InfixNode](t, ev, "foo.a * -1", `"foo"."a"*-1`)
}

// --- CASE ---

func TestEvalCase(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.CaseNode](t, ev, "CASE foo.fizz WHEN 1 THEN 1 ELSE 0 END", "CASE WHEN 1 THEN 1 ELSE 0 END")
	assertEval[*nodes.CaseNode](t, ev, "CASE foo.fizz WHEN 1 THEN 1 WHEN 2 THEN 2 END", "CASE WHEN 1 THEN 1 WHEN 2 THEN 2 END")
	assertEval[*nodes.CaseNode](t, ev, "CASE WHEN foo.fizz = 1 THEN 1 ELSE 0 END", `CASE WHEN "foo"."fizz"=1 THEN 1 ELSE 0 END`)
	c := assertEval[*nodes.CaseNode](t, ev,
		"CASE WHEN foo.fizz = 1 THEN 1 WHEN foo.fizz = 2 THEN 2 END",
		`CASE WHEN "foo"."fizz"=1 THEN 1 WHEN "foo"."fizz"=2 THEN 2 END`)
	testutil.AssertEqual(t, len(c.Whens), 2)
	if c.ElseVal != nil {
		t.Error("expected no ELSE branch")
	}
}

func TestEvalSimpleCaseKeepsOperand(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	n, err := ev.Eval("case foo.fizz when 1 then 'one' else 'many' end")
	testutil.AssertNoError(t, err)
	c := n.(*nodes.CaseNode)
	if c.Operand == nil {
		t.Fatal("expected operand to be kept on the node")
	}
	testutil.AssertSQL(t, visitors.NewPostgresVisitor(), c, `CASE "foo"."fizz" WHEN 1 THEN 'one' ELSE 'many' END`)
	testutil.AssertSQL(t, visitors.NewANSIVisitor(), c.Searched(), `CASE WHEN "foo"."fizz"=1 THEN 'one' ELSE 'many' END`)
}

// --- Functions and aggregates ---

func TestEvalAggregates(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	tests := []struct {
		expr string
		want string
	}{
		{"SUM(foo.fizz)", `SUM("foo"."fizz")`},
		{"sum(foo.fizz)", `SUM("foo"."fizz")`},
		{"count(*)", `COUNT(*)`},
		{"count(distinct foo.fizz)", `COUNT(DISTINCT "foo"."fizz")`},
		{"SUM(foo.fizz) OVER(partition by bar.buzz)", `SUM("foo"."fizz") OVER(PARTITION BY "b"."buzz")`},
		{"SUM(foo.fizz IGNORE NULLS) OVER(partition by bar.buzz)", `SUM("foo"."fizz" IGNORE NULLS) OVER(PARTITION BY "b"."buzz")`},
		{"SUM(foo.fizz) OVER(order by bar.buzz)", `SUM("foo"."fizz") OVER(ORDER BY "b"."buzz")`},
		{"SUM(foo.fizz) OVER(order by bar.buzz asc)", `SUM("foo"."fizz") OVER(ORDER BY "b"."buzz" ASC)`},
		{"SUM(foo.fizz) OVER(order by bar.buzz desc)", `SUM("foo"."fizz") OVER(ORDER BY "b"."buzz" DESC)`},
		{"SUM(foo.fizz) OVER(order by bar.buzz, bar.bizz desc)", `SUM("foo"."fizz") OVER(ORDER BY "b"."buzz","b"."bizz" DESC)`},
		{"SUM(foo.fizz) OVER(order by bar.buzz, bar.bizz)", `SUM("foo"."fizz") OVER(ORDER BY "b"."buzz","b"."bizz")`},
		{"SUM(foo.fizz) OVER(partition by bar.buzz order by bar.buzz)", `SUM("foo"."fizz") OVER(PARTITION BY "b"."buzz" ORDER BY "b"."buzz")`},
		{"row_number() over ()", `ROW_NUMBER() OVER()`},
		{"lower(foo.x) over (partition by bar.y)", `LOWER("foo"."x") OVER(PARTITION BY "b"."y")`},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			assertEval[*nodes.AggregateNode](t, ev, tt.expr, tt.want)
		})
	}
}

func TestEvalWindowPreservesOrder(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	n := assertEval[*nodes.AggregateNode](t, ev,
		"SUM(foo.fizz) OVER(order by bar.a, bar.b desc, bar.c asc)",
		`SUM("foo"."fizz") OVER(ORDER BY "b"."a","b"."b" DESC,"b"."c" ASC)`)
	dirs := []nodes.OrderDirection{nodes.DirDefault, nodes.Desc, nodes.Asc}
	for i, o := range n.Window.OrderBy {
		testutil.AssertEqual(t, o.Direction, dirs[i])
	}
}

func TestEvalScalarFunctions(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	assertEval[*nodes.NamedFunctionNode](t, ev, "coalesce(foo.fizz, 0)", `COALESCE("foo"."fizz",0)`)
	assertEval[*nodes.NamedFunctionNode](t, ev, "now()", `NOW()`)
	assertEval[*nodes.NamedFunctionNode](t, ev, "concat(foo.a)", `CONCAT("foo"."a")`)
	assertEval[*nodes.NamedFunctionNode](t, ev, "date_trunc(month, foo.at)", `DATE_TRUNC(DatePart.month,"foo"."at")`)
}

// --- CAST ---

func TestEvalCast(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	plain := []string{"INTEGER", "FLOAT", "NUMERIC", "SIGNED", "UNSIGNED", "BOOLEAN"}
	sized := []string{"CHAR", "VARCHAR", "BINARY", "VARBINARY"}
	for _, typ := range append(plain, sized...) {
		assertEval[*nodes.CastNode](t, ev, fmt.Sprintf("CAST(foo.fizz AS %s)", typ), fmt.Sprintf(`CAST("foo"."fizz" AS %s)`, typ))
	}
	for _, typ := range sized {
		assertEval[*nodes.CastNode](t, ev, fmt.Sprintf("CAST(foo.fizz AS %s(1))", typ), fmt.Sprintf(`CAST("foo"."fizz" AS %s(1))`, typ))
	}
	assertEval[*nodes.CastNode](t, ev, "CAST(foo.fizz AS LONG VARCHAR)", `CAST("foo"."fizz" AS LONG VARCHAR)`)
	assertEval[*nodes.CastNode](t, ev, "CAST(foo.fizz AS LONG VARBINARY)", `CAST("foo"."fizz" AS LONG VARBINARY)`)
	assertEval[*nodes.CastNode](t, ev, "cast(foo.fizz as varchar(1))", `CAST("foo"."fizz" AS VARCHAR(1))`)
	assertEval[*nodes.CastNode](t, ev, "CAST(foo.fizz AS NUMERIC(10, 2))", `CAST("foo"."fizz" AS NUMERIC(10,2))`)
	assertEval[*nodes.CastNode](t, ev, "CAST(foo.fizz + 1 AS VARCHAR(0))", `CAST("foo"."fizz"+1 AS VARCHAR(0))`)
}

// --- Date parts ---

func TestEvalDateParts(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	for _, part := range []string{"YEAR", "QUARTER", "MONTH", "WEEK", "DAY", "HOUR", "MINUTE", "SECOND", "MICROSECOND"} {
		assertEval[*nodes.DatePartNode](t, ev, part, "DatePart."+strings.ToLower(part))
	}
	assertEval[*nodes.DatePartNode](t, ev, "year", "DatePart.year")
}

// --- Errors ---

func TestEvalErrors(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	tests := []struct {
		expr   string
		target error
	}{
		// field resolution
		{"b.fizz", ErrUnresolvedField},
		{"fizz", ErrUnresolvedField},
		{"baz.fizz", ErrUnresolvedField},
		{"Foo.fizz", ErrUnresolvedField},
		{`"fizz"`, ErrUnresolvedField},

		// syntax
		{"", ErrSyntax},
		{"   \n", ErrSyntax},
		{"desc", ErrSyntax},
		{"varchar", ErrSyntax},
		{"INTEGER = 1", ErrSyntax},
		{"long", ErrSyntax},
		{"CASE ELSE 1 END", ErrSyntax},
		{"foo.fizz foo.fizz", ErrSyntax},
		{"foo.fizz =", ErrSyntax},
		{"(foo.fizz", ErrSyntax},
		{"foo.fizz)", ErrSyntax},
		{"'unterminated", ErrSyntax},
		{`foo."unterminated`, ErrSyntax},
		{`foo.""`, ErrSyntax},
		{"foo.fizz # 1", ErrSyntax},
		{"foo.fizz LIKE foo.buzz", ErrSyntax},
		{"foo.fizz IN ()", ErrSyntax},
		{"foo.fizz IN (foo.buzz)", ErrSyntax},
		{"foo.fizz IN 1", ErrSyntax},
		{"foo.fizz BETWEEN 1", ErrSyntax},
		{"foo.fizz IS 1", ErrSyntax},
		{"-foo.fizz", ErrSyntax},
		{"CASE END", ErrSyntax},
		{"CASE WHEN foo.a = 1 THEN 1", ErrSyntax},
		{"CASE WHEN foo.a = 1 1 END", ErrSyntax},
		{"CAST(foo.fizz VARCHAR)", ErrSyntax},
		{"CAST(foo.fizz AS VARCHAR(-1))", ErrSyntax},
		{"CAST(foo.fizz AS VARCHAR(1.5))", ErrSyntax},
		{"CAST(foo.fizz AS VARCHAR(1)", ErrSyntax},
		{"SUM(foo.fizz) OVER(partition foo.a)", ErrSyntax},
		{"SUM(foo.fizz IGNORE foo.a)", ErrSyntax},
		{"mod(foo.a)", ErrSyntax},
		{"123abc", ErrSyntax},
		{"99999999999999999999", ErrSyntax},
		{"foo.", ErrSyntax},
		{"foo.fizz ! 1", ErrSyntax},
		{"NOT", ErrSyntax},

		// unsupported
		{"CAST(foo.fizz AS JSONB)", ErrUnsupported},
		{"CAST(foo.fizz AS INTEGER(4))", ErrUnsupported},
		{"CAST(foo.fizz AS VARCHAR(1, 2))", ErrUnsupported},
		{"lower(distinct foo.fizz)", ErrUnsupported},
		{"lower(foo.fizz ignore nulls)", ErrUnsupported},
		{"lower(*)", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			n, err := ev.Eval(tt.expr)
			if n != nil {
				t.Errorf("expected no result, got %T", n)
			}
			testutil.AssertErrorIs(t, err, tt.target)
		})
	}
}

func TestEvalErrorDetails(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)

	_, err := ev.Eval("b.fizz")
	var unresolved *UnresolvedFieldError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected *UnresolvedFieldError, got %T", err)
	}
	testutil.AssertEqual(t, unresolved.Qualifier, "b")
	testutil.AssertEqual(t, unresolved.Column, "fizz")
	if !strings.Contains(unresolved.Reason, "alias") {
		t.Errorf("expected reason to mention the alias, got %q", unresolved.Reason)
	}

	_, err = ev.Eval("foo.fizz = = 1")
	var syntax *SyntaxError
	if !errors.As(err, &syntax) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	testutil.AssertEqual(t, syntax.Offset, 11)
	testutil.AssertEqual(t, syntax.Token, "=")

	_, err = ev.Eval("CAST(foo.fizz AS JSONB)")
	var unsupported *UnsupportedConstructError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedConstructError, got %T", err)
	}
	testutil.AssertEqual(t, unsupported.Construct, "type")

	_, err = ev.Eval("CASE END")
	if !errors.As(err, &syntax) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	testutil.AssertEqual(t, syntax.Offset, 5)
	if !strings.Contains(syntax.Message, "expected WHEN") {
		t.Errorf("expected message to mention WHEN, got %q", syntax.Message)
	}

	_, err = ev.Eval("foo.fizz = varchar")
	if !errors.As(err, &syntax) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	testutil.AssertEqual(t, syntax.Offset, 11)
	testutil.AssertEqual(t, syntax.Token, "varchar")
}

func TestEvalTypeNamesAsColumns(t *testing.T) {
	t.Parallel()
	ev, err := New(TableRef{Name: "foo", Alias: "f"})
	testutil.AssertNoError(t, err)
	assertEval[*nodes.Attribute](t, ev, "foo.varchar", `"f"."varchar"`)
	assertEval[*nodes.Attribute](t, ev, `"integer"`, `"f"."integer"`)
	assertEval[*nodes.CastNode](t, ev, "CAST(foo.x AS LONG VARCHAR)", `CAST("f"."x" AS LONG VARCHAR)`)
}

func TestEvalNestingLimit(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)

	ok := strings.Repeat("(", maxDepth) + "foo.fizz" + strings.Repeat(")", maxDepth)
	_, err := ev.Eval(ok)
	testutil.AssertNoError(t, err)

	deep := strings.Repeat("(", maxDepth+1) + "foo.fizz" + strings.Repeat(")", maxDepth+1)
	_, err = ev.Eval(deep)
	testutil.AssertErrorIs(t, err, ErrSyntax)

	_, err = ev.Eval(strings.Repeat("NOT ", maxDepth+1) + "foo.fizz")
	testutil.AssertErrorIs(t, err, ErrSyntax)

	_, err = ev.Eval(strings.Repeat("lower(", maxDepth+1) + "foo.fizz" + strings.Repeat(")", maxDepth+1))
	testutil.AssertErrorIs(t, err, ErrSyntax)
}

// --- Construction ---

func TestNewValidatesTables(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		refs []TableRef
	}{
		{"empty", nil},
		{"blank name", []TableRef{{Name: " "}}},
		{"duplicate name", []TableRef{{Name: "foo"}, {Name: "foo", Alias: "f"}}},
		{"duplicate alias", []TableRef{{Name: "foo", Alias: "x"}, {Name: "bar", Alias: "x"}}},
		{"alias clashes with name", []TableRef{{Name: "foo"}, {Name: "bar", Alias: "foo"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, err := New(tt.refs...)
			if ev != nil {
				t.Error("expected nil evaluator")
			}
			testutil.AssertErrorIs(t, err, ErrConfig)
		})
	}
}

func TestTablesReturnsCopies(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	tables := ev.Tables()
	testutil.AssertEqual(t, len(tables), 2)
	testutil.AssertEqual(t, tables[1].AliasName(), "b")
	tables[1].Alias = "zzz"
	assertEval[*nodes.Attribute](t, ev, "bar.fizz", `"b"."fizz"`)
}

func TestParseTableRefs(t *testing.T) {
	t.Parallel()
	refs, err := ParseTableRefs("foo, bar:b ,,baz:")
	testutil.AssertNoError(t, err)
	want := []TableRef{{Name: "foo"}, {Name: "bar", Alias: "b"}, {Name: "baz"}}
	testutil.AssertEqual(t, len(refs), len(want))
	for i := range want {
		testutil.AssertEqual(t, refs[i], want[i])
	}
	testutil.AssertEqual(t, refs[1].String(), "bar:b")
	testutil.AssertEqual(t, refs[0].String(), "foo")

	_, err = ParseTableRefs(":b")
	testutil.AssertErrorIs(t, err, ErrConfig)
}

func TestEvalTreesDoNotShareTables(t *testing.T) {
	t.Parallel()
	ev, err := New(TableRef{Name: "foo", Alias: "f"})
	testutil.AssertNoError(t, err)

	first := assertEval[*nodes.Attribute](t, ev, "foo.fizz", `"f"."fizz"`)
	first.Relation.Alias = "changed"
	first.Relation.Name = "other"

	assertEval[*nodes.Attribute](t, ev, "foo.buzz", `"f"."buzz"`)
	assertEval[*nodes.Attribute](t, ev, "buzz", `"f"."buzz"`)

	second := assertEval[*nodes.Attribute](t, ev, "foo.a", `"f"."a"`)
	third := assertEval[*nodes.Attribute](t, ev, "foo.b", `"f"."b"`)
	if second.Relation == third.Relation {
		t.Error("expected each attribute to own its table")
	}
	testutil.AssertEqual(t, ev.Tables()[0].AliasName(), "f")
}

func TestEvaluatorsAreIndependent(t *testing.T) {
	t.Parallel()
	one, err := New(TableRef{Name: "foo", Alias: "f"})
	testutil.AssertNoError(t, err)
	two, err := New(TableRef{Name: "foo", Alias: "g"})
	testutil.AssertNoError(t, err)
	assertEval[*nodes.Attribute](t, one, "fizz", `"f"."fizz"`)
	assertEval[*nodes.Attribute](t, two, "fizz", `"g"."fizz"`)
}

func TestEvalConcurrent(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := ev.Eval(fmt.Sprintf("bar.fizz = %d", i))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			want := fmt.Sprintf(`"b"."fizz"=%d`, i)
			if got := n.Accept(visitors.NewANSIVisitor()); got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		}()
	}
	wg.Wait()
}

// --- Tree shape ---

func TestEvalTreeShape(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t)
	tests := []struct {
		expr string
		want string
	}{
		{"bar.fizz != 1 OR NOT (foo.buzz IS NULL)", "b.fizz<>lit or not (null_test)"},
		{"foo.a = 1 AND bar.b = 2 OR foo.c = 3", "foo.a=lit and b.b=lit or foo.c=lit"},
		{"foo.a = 1 AND (bar.b = 2 OR foo.c = 3)", "foo.a=lit and (b.b=lit or foo.c=lit)"},
		{"date_trunc(year, foo.at)", "named_func"},
	}
	for _, tt := range tests {
		n, err := ev.Eval(tt.expr)
		testutil.AssertNoError(t, err)
		if got := n.Accept(testutil.StubVisitor{}); got != tt.want {
			t.Errorf("Eval(%q) shape = %q, expected %q", tt.expr, got, tt.want)
		}
	}
}
