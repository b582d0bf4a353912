package nodes

import "fmt"

// LiteralKind identifies the variant held by a LiteralNode.
type LiteralKind int

const (
	KindNull LiteralKind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
)

var literalKindNames = [...]string{
	KindNull:    "Null",
	KindInteger: "Integer",
	KindFloat:   "Float",
	KindString:  "String",
	KindBoolean: "Boolean",
}

func (k LiteralKind) String() string { return literalKindNames[k] }

// LiteralNode holds a constant value. Value is always one of nil, int64,
// float64, string or bool; use the constructors to build one.
type LiteralNode struct {
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// Kind reports which literal variant the node holds.
func (n *LiteralNode) Kind() LiteralKind {
	switch n.Value.(type) {
	case int64:
		return KindInteger
	case float64:
		return KindFloat
	case string:
		return KindString
	case bool:
		return KindBoolean
	default:
		return KindNull
	}
}

// Int creates an integer literal.
func Int(v int64) *LiteralNode { return &LiteralNode{Value: v} }

// Float creates a floating point literal.
func Float(v float64) *LiteralNode { return &LiteralNode{Value: v} }

// String creates a string literal. The value is the unquoted text.
func String(v string) *LiteralNode { return &LiteralNode{Value: v} }

// Bool creates a boolean literal.
func Bool(v bool) *LiteralNode { return &LiteralNode{Value: v} }

// Null creates a NULL literal.
func Null() *LiteralNode { return &LiteralNode{} }

// Literal wraps a raw Go value into a LiteralNode, widening integer and
// float types. If val already implements Node, it is returned as-is.
func Literal(val any) Node {
	switch v := val.(type) {
	case Node:
		return v
	case nil:
		return Null()
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case string:
		return String(v)
	case bool:
		return Bool(v)
	default:
		panic(fmt.Sprintf("sqlterm: unsupported literal type %T", v))
	}
}
