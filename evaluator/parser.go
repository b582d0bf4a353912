package evaluator

// Grammar, lowest precedence first:
//
//	expr          → and_expr { OR and_expr }
//	and_expr      → not_expr { AND not_expr }
//	not_expr      → NOT not_expr | predicate
//	predicate     → concat { comparison | [NOT] LIKE str | [NOT] ILIKE str
//	                | IS [NOT] NULL | [NOT] IN ( literal, ... )
//	                | [NOT] BETWEEN concat AND concat }
//	concat        → additive { || additive }
//	additive      → multiplicative { (+|-) multiplicative }
//	multiplicative→ unary { (*|/|%) unary }
//	unary         → - number | primary
//
// Primary expressions live in parser_primary.go, OVER clauses in
// parser_window.go.

import (
	"fmt"

	"github.com/bawdo/sqlterm/nodes"
)

// maxDepth bounds nesting of brackets, NOT, CASE, CAST and function calls.
const maxDepth = 64

// parser is a single-use precedence-climbing parser over a token slice.
type parser struct {
	tokens   []Token
	pos      int
	depth    int
	resolver *Resolver
}

func newParser(tokens []Token, r *Resolver) *parser {
	return &parser{tokens: tokens, resolver: r}
}

// ---------- Token Helpers ----------

func (p *parser) peek() Token { return p.tokens[p.pos] }

// peekAt returns the token n positions ahead, clamped to EOF.
func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) checkKeyword(kw string) bool { return p.peek().is(TokenKeyword, kw) }

func (p *parser) matchKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) matchOperator(op string) bool {
	if p.peek().is(TokenOperator, op) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) matchPunct(s string) bool {
	if p.peek().is(TokenPunct, s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw string) error {
	if !p.matchKeyword(kw) {
		return p.unexpected("expected " + kw)
	}
	return nil
}

func (p *parser) expectPunct(s string) error {
	if !p.matchPunct(s) {
		return p.unexpected(fmt.Sprintf("expected %q", s))
	}
	return nil
}

// unexpected builds a SyntaxError for the current token.
func (p *parser) unexpected(msg string) error {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		return &SyntaxError{Offset: tok.Offset, Message: msg + ", got end of input"}
	}
	return &SyntaxError{Offset: tok.Offset, Token: tok.Raw, Message: msg}
}

// enter increments the nesting depth, failing past maxDepth.
func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.unexpected(fmt.Sprintf("expression nested more than %d levels deep", maxDepth))
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// ---------- Entry Point ----------

// parse reads one complete expression and rejects trailing tokens.
func (p *parser) parse() (nodes.Node, error) {
	if p.peek().Kind == TokenEOF {
		return nil, &SyntaxError{Offset: p.peek().Offset, Message: "empty expression"}
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokenEOF {
		return nil, p.unexpected("unexpected token after expression")
	}
	return n, nil
}

// ---------- Precedence Levels ----------

func (p *parser) parseOr() (nodes.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.matchKeyword("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = nodes.Or(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (nodes.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.matchKeyword("AND") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = nodes.And(left, right)
	}
	return left, nil
}

func (p *parser) parseNot() (nodes.Node, error) {
	if !p.matchKeyword("NOT") {
		return p.parsePredicate()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	inner, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return nodes.Not(inner), nil
}

var comparisonOps = map[string]nodes.ComparisonOp{
	"=":  nodes.OpEq,
	"<>": nodes.OpNotEq,
	"!=": nodes.OpNotEq,
	"<":  nodes.OpLt,
	"<=": nodes.OpLtEq,
	">":  nodes.OpGt,
	">=": nodes.OpGtEq,
}

func (p *parser) parsePredicate() (nodes.Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if op, ok := comparisonOps[tok.Text]; ok && tok.Kind == TokenOperator {
			p.advance()
			right, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			left = nodes.NewComparisonNode(left, right, op)
			continue
		}

		if p.matchKeyword("IS") {
			negate := p.matchKeyword("NOT")
			if err := p.expectKeyword("NULL"); err != nil {
				return nil, err
			}
			if negate {
				left = nodes.IsNotNull(left)
			} else {
				left = nodes.IsNull(left)
			}
			continue
		}

		negate := false
		if p.checkKeyword("NOT") {
			next := p.peekAt(1)
			if next.Kind != TokenKeyword || !isNegatable(next.Text) {
				return left, nil
			}
			p.advance()
			negate = true
		}

		switch {
		case p.matchKeyword("LIKE"):
			left, err = p.parseMatch(left, nodes.OpLike, negate)
		case p.matchKeyword("ILIKE"):
			left, err = p.parseMatch(left, nodes.OpILike, negate)
		case p.matchKeyword("IN"):
			left, err = p.parseIn(left, negate)
		case p.matchKeyword("BETWEEN"):
			left, err = p.parseBetween(left, negate)
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func isNegatable(kw string) bool {
	switch kw {
	case "LIKE", "ILIKE", "IN", "BETWEEN":
		return true
	}
	return false
}

// parseMatch parses the pattern of [NOT] LIKE / ILIKE, which must be a
// string literal.
func (p *parser) parseMatch(left nodes.Node, op nodes.MatchOp, negate bool) (nodes.Node, error) {
	tok := p.peek()
	if tok.Kind != TokenString {
		return nil, p.unexpected("pattern must be a string literal")
	}
	p.advance()
	return &nodes.MatchNode{Left: left, Pattern: nodes.String(tok.Text), Op: op, Negate: negate}, nil
}

// parseIn parses a parenthesised, non-empty list of literals.
func (p *parser) parseIn(left nodes.Node, negate bool) (nodes.Node, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var vals []nodes.Node
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		vals = append(vals, lit)
		if !p.matchPunct(",") {
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &nodes.InNode{Expr: left, Vals: vals, Negate: negate}, nil
}

// parseBetween parses low AND high. The AND belongs to BETWEEN, so the
// bounds are parsed below the boolean levels.
func (p *parser) parseBetween(left nodes.Node, negate bool) (nodes.Node, error) {
	low, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AND"); err != nil {
		return nil, err
	}
	high, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	var n nodes.Node = nodes.Between(left, low, high)
	if negate {
		n = nodes.Not(n)
	}
	return n, nil
}

func (p *parser) parseConcat() (nodes.Node, error) {
	first, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !p.peek().is(TokenOperator, "||") {
		return first, nil
	}
	parts := []nodes.Node{first}
	for p.matchOperator("||") {
		next, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	return nodes.NewConcat(parts...), nil
}

func (p *parser) parseAdditive() (nodes.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op nodes.InfixOp
		switch {
		case p.matchOperator("+"):
			op = nodes.OpPlus
		case p.matchOperator("-"):
			op = nodes.OpMinus
		default:
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = nodes.NewInfixNode(left, right, op)
	}
}

func (p *parser) parseMultiplicative() (nodes.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.matchOperator("*"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = nodes.Multiply(left, right)
		case p.matchOperator("/"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = nodes.Divide(left, right)
		case p.matchOperator("%"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = nodes.Mod(left, right)
		default:
			return left, nil
		}
	}
}

// parseUnary handles a leading minus, which is only valid directly before
// a numeric literal.
func (p *parser) parseUnary() (nodes.Node, error) {
	if !p.peek().is(TokenOperator, "-") {
		return p.parsePrimary()
	}
	next := p.peekAt(1)
	if next.Kind != TokenInteger && next.Kind != TokenFloat {
		return nil, p.unexpected("unary minus is only supported before a numeric literal")
	}
	p.advance()
	return p.parseNumber(true)
}
