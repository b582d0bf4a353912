package evaluator

import "fmt"

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenQuotedIdent
	TokenInteger
	TokenFloat
	TokenString
	TokenKeyword
	TokenOperator
	TokenPunct
)

var tokenKindNames = [...]string{
	TokenEOF:         "end of input",
	TokenIdent:       "identifier",
	TokenQuotedIdent: "quoted identifier",
	TokenInteger:     "integer",
	TokenFloat:       "number",
	TokenString:      "string",
	TokenKeyword:     "keyword",
	TokenOperator:    "operator",
	TokenPunct:       "punctuation",
}

func (k TokenKind) String() string { return tokenKindNames[k] }

// Token is a single lexical unit. For strings and quoted identifiers Text
// holds the unescaped body; for keywords it holds the upper-cased keyword.
type Token struct {
	Kind   TokenKind
	Text   string
	Raw    string // source text as written
	Offset int    // byte offset into the input
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Raw)
}

// is reports whether the token is the given keyword, operator or punctuation.
func (t Token) is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}
