package evaluator

import "strings"

// Lexer turns expression text into a token slice terminated by TokenEOF.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize consumes the whole input. The returned slice always ends with a
// TokenEOF token whose Offset is len(input).
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peekByte(ahead int) byte {
	if l.pos+ahead >= len(l.input) {
		return 0
	}
	return l.input[l.pos+ahead]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()
	start := l.pos
	if start >= len(l.input) {
		return Token{Kind: TokenEOF, Offset: start}, nil
	}

	ch := l.input[start]
	switch {
	case ch == '\'':
		return l.readQuoted(TokenString, '\'', "string literal")
	case ch == '"':
		tok, err := l.readQuoted(TokenQuotedIdent, '"', "quoted identifier")
		if err == nil && tok.Text == "" {
			return Token{}, &SyntaxError{Offset: start, Token: tok.Raw, Message: "empty quoted identifier"}
		}
		return tok, err
	case isDigit(ch) || (ch == '.' && isDigit(l.peekByte(1))):
		return l.readNumber()
	case isIdentStart(ch):
		return l.readWord(), nil
	}

	if op := l.matchOperator(); op != "" {
		l.pos += len(op)
		return Token{Kind: TokenOperator, Text: op, Raw: op, Offset: start}, nil
	}
	switch ch {
	case '(', ')', ',', '.':
		l.pos++
		return Token{Kind: TokenPunct, Text: string(ch), Raw: string(ch), Offset: start}, nil
	}
	return Token{}, &SyntaxError{Offset: start, Token: string(ch), Message: "unexpected character"}
}

// operators ordered longest first so that <= wins over <.
var operators = []string{"<>", "!=", "<=", ">=", "||", "=", "<", ">", "+", "-", "*", "/", "%"}

func (l *Lexer) matchOperator() string {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return op
		}
	}
	return ""
}

// readQuoted reads a q-delimited token where a doubled q stands for one q.
func (l *Lexer) readQuoted(kind TokenKind, q byte, what string) (Token, error) {
	start := l.pos
	l.pos++ // opening quote

	var body strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == q {
			if l.peekByte(1) == q {
				body.WriteByte(q)
				l.pos += 2
				continue
			}
			l.pos++
			return Token{Kind: kind, Text: body.String(), Raw: l.input[start:l.pos], Offset: start}, nil
		}
		body.WriteByte(ch)
		l.pos++
	}
	return Token{}, &SyntaxError{Offset: start, Token: l.input[start:], Message: "unterminated " + what}
}

// readNumber reads an integer or decimal literal with an optional exponent.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	kind := TokenInteger
	for isDigit(l.peekByte(0)) {
		l.pos++
	}
	if l.peekByte(0) == '.' {
		kind = TokenFloat
		l.pos++
		for isDigit(l.peekByte(0)) {
			l.pos++
		}
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		off := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			off = 2
		}
		if isDigit(l.peekByte(off)) {
			kind = TokenFloat
			l.pos += off
			for isDigit(l.peekByte(0)) {
				l.pos++
			}
		}
	}
	raw := l.input[start:l.pos]
	if c := l.peekByte(0); isIdentStart(c) || c == '.' {
		return Token{}, &SyntaxError{Offset: start, Token: raw + string(c), Message: "invalid number literal"}
	}
	return Token{Kind: kind, Text: raw, Raw: raw, Offset: start}, nil
}

// readWord reads an unquoted identifier or keyword.
func (l *Lexer) readWord() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	raw := l.input[start:l.pos]
	if kw, ok := lookupKeyword(raw); ok {
		return Token{Kind: TokenKeyword, Text: kw, Raw: raw, Offset: start}
	}
	return Token{Kind: TokenIdent, Text: raw, Raw: raw, Offset: start}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}
