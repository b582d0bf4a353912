package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/sqlterm/nodes"
)

// parsePrimary parses literals, field references, bracketed expressions,
// CASE, CAST, date parts and function calls.
func (p *parser) parsePrimary() (nodes.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenInteger, TokenFloat:
		return p.parseNumber(false)
	case TokenString:
		p.advance()
		return nodes.String(tok.Text), nil
	case TokenIdent, TokenQuotedIdent:
		return p.parseIdentifier()
	case TokenKeyword:
		switch tok.Text {
		case "NULL", "TRUE", "FALSE":
			return p.parseLiteral()
		case "CASE":
			return p.parseCase()
		case "CAST":
			return p.parseCast()
		}
		return nil, p.unexpected(fmt.Sprintf("reserved word %s cannot start an expression", tok.Text))
	case TokenPunct:
		if tok.Text == "(" {
			return p.parseGroup()
		}
	}
	return nil, p.unexpected("expected an expression")
}

// parseLiteral parses a single constant: number (optionally negative),
// string, NULL, TRUE or FALSE.
func (p *parser) parseLiteral() (nodes.Node, error) {
	tok := p.peek()
	switch {
	case tok.Kind == TokenInteger || tok.Kind == TokenFloat:
		return p.parseNumber(false)
	case tok.is(TokenOperator, "-"):
		return p.parseUnary()
	case tok.Kind == TokenString:
		p.advance()
		return nodes.String(tok.Text), nil
	case tok.is(TokenKeyword, "NULL"):
		p.advance()
		return nodes.Null(), nil
	case tok.is(TokenKeyword, "TRUE"):
		p.advance()
		return nodes.Bool(true), nil
	case tok.is(TokenKeyword, "FALSE"):
		p.advance()
		return nodes.Bool(false), nil
	}
	return nil, p.unexpected("expected a literal value")
}

// parseNumber converts the current numeric token into a literal.
func (p *parser) parseNumber(negate bool) (nodes.Node, error) {
	tok := p.peek()
	text := tok.Text
	if negate {
		text = "-" + text
	}
	if tok.Kind == TokenInteger {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, p.unexpected("integer literal out of range")
		}
		p.advance()
		return nodes.Int(v), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.unexpected("invalid number literal")
	}
	p.advance()
	return nodes.Float(v), nil
}

func (p *parser) parseGroup() (nodes.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.advance() // (
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return nodes.Group(inner), nil
}

// parseIdentifier handles column, qualifier.column, date parts and function
// calls.
func (p *parser) parseIdentifier() (nodes.Node, error) {
	first := p.advance()

	if first.Kind == TokenIdent && p.peek().is(TokenPunct, "(") {
		return p.parseCall(first)
	}

	if p.matchPunct(".") {
		col := p.peek()
		switch col.Kind {
		case TokenIdent, TokenQuotedIdent:
		case TokenKeyword:
			// foo.desc names a column; only bare keywords are reserved.
			col.Text = col.Raw
		default:
			return nil, p.unexpected("expected a column name after " + first.Raw + ".")
		}
		p.advance()
		return p.resolve(first.Text, col.Text)
	}

	if first.Kind == TokenIdent {
		if part, ok := nodes.LookupDatePart(first.Text); ok {
			return nodes.NewDatePart(part), nil
		}
		if isTypeWord(first.Text) {
			return nil, &SyntaxError{
				Offset:  first.Offset,
				Token:   first.Raw,
				Message: fmt.Sprintf("type name %s cannot be used as an expression", strings.ToUpper(first.Text)),
			}
		}
	}
	return p.resolve("", first.Text)
}

// isTypeWord reports whether word is a cast type name, or LONG from the
// two-word types. Quoted or qualified, the same spelling is a column.
func isTypeWord(word string) bool {
	if strings.EqualFold(word, "LONG") {
		return true
	}
	_, ok := nodes.LookupSQLType(word)
	return ok
}

// resolve binds a field reference, keeping a failed lookup a nil Node.
func (p *parser) resolve(qualifier, column string) (nodes.Node, error) {
	attr, err := p.resolver.Resolve(qualifier, column)
	if err != nil {
		return nil, err
	}
	return attr, nil
}

// parseCall parses NAME( [DISTINCT] args [IGNORE NULLS] ) [OVER(...)].
// MOD and CONCAT map onto their dedicated nodes.
func (p *parser) parseCall(name Token) (nodes.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.advance() // (

	distinct := p.matchKeyword("DISTINCT")
	var args []nodes.Node
	star := false
	switch {
	case p.peek().is(TokenPunct, ")"):
	case p.peek().is(TokenOperator, "*") && p.peekAt(1).is(TokenPunct, ")"):
		p.advance()
		args = append(args, nodes.Star())
		star = true
	default:
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.matchPunct(",") {
				break
			}
		}
	}

	ignoreNulls := false
	if p.matchKeyword("IGNORE") {
		if err := p.expectKeyword("NULLS"); err != nil {
			return nil, err
		}
		ignoreNulls = true
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	var window *nodes.WindowDefinition
	if p.matchKeyword("OVER") {
		w, err := p.parseWindow()
		if err != nil {
			return nil, err
		}
		window = w
	}

	upper := strings.ToUpper(name.Text)
	if nodes.IsAggregateName(upper) || window != nil {
		return &nodes.AggregateNode{
			Name:        upper,
			Args:        args,
			Distinct:    distinct,
			IgnoreNulls: ignoreNulls,
			Window:      window,
		}, nil
	}

	switch {
	case distinct:
		return nil, &UnsupportedConstructError{Construct: "modifier", Message: "DISTINCT is only valid in an aggregate call, not " + upper}
	case ignoreNulls:
		return nil, &UnsupportedConstructError{Construct: "modifier", Message: "IGNORE NULLS is only valid in an aggregate call, not " + upper}
	case star:
		return nil, &UnsupportedConstructError{Construct: "argument", Message: "* is only valid in an aggregate call, not " + upper}
	}

	switch upper {
	case "MOD":
		if len(args) != 2 {
			return nil, &SyntaxError{Offset: name.Offset, Token: name.Raw, Message: fmt.Sprintf("MOD takes 2 arguments, got %d", len(args))}
		}
		return nodes.Mod(args[0], args[1]), nil
	case "CONCAT":
		if len(args) >= 2 {
			return nodes.NewConcat(args...), nil
		}
	}
	return nodes.NewNamedFunction(upper, args...), nil
}

// parseCase parses both the searched and the simple CASE forms.
func (p *parser) parseCase() (nodes.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.advance() // CASE

	c := nodes.NewCase()
	if p.checkKeyword("ELSE") || p.checkKeyword("END") {
		return nil, p.unexpected("expected WHEN")
	}
	if !p.checkKeyword("WHEN") {
		operand, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		c.Operand = operand
	}
	if !p.checkKeyword("WHEN") {
		return nil, p.unexpected("expected WHEN")
	}
	for p.matchKeyword("WHEN") {
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		c.When(cond, result)
	}
	if p.matchKeyword("ELSE") {
		def, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		c.Else(def)
	}
	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return c, nil
}

// parseCast parses CAST(expr AS TYPE[(n[,n])]).
func (p *parser) parseCast() (nodes.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.advance() // CAST

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}

	typeTok := p.peek()
	if typeTok.Kind != TokenIdent {
		return nil, p.unexpected("expected a type name")
	}
	p.advance()
	typeName := typeTok.Text
	if strings.EqualFold(typeName, "LONG") && p.peek().Kind == TokenIdent {
		typeName += " " + p.advance().Text
	}
	typ, ok := nodes.LookupSQLType(typeName)
	if !ok {
		return nil, &UnsupportedConstructError{Construct: "type", Message: "unknown cast type " + strings.ToUpper(typeName)}
	}

	var sizes []int
	if p.matchPunct("(") {
		for {
			tok := p.peek()
			if tok.Kind != TokenInteger {
				return nil, p.unexpected("type size must be a non-negative integer")
			}
			n, err := strconv.Atoi(tok.Text)
			if err != nil {
				return nil, p.unexpected("type size out of range")
			}
			p.advance()
			sizes = append(sizes, n)
			if !p.matchPunct(",") {
				break
			}
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		if len(sizes) > typ.MaxSizes() {
			msg := fmt.Sprintf("%s takes at most %d size arguments, got %d", typ, typ.MaxSizes(), len(sizes))
			if typ.MaxSizes() == 0 {
				msg = fmt.Sprintf("%s does not take a size", typ)
			}
			return nil, &UnsupportedConstructError{Construct: "type", Message: msg}
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return nodes.Cast(expr, typ, sizes...), nil
}
