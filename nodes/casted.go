package nodes

import "strings"

// SQLType is one of the type names accepted by CAST.
type SQLType int

const (
	TypeBoolean SQLType = iota
	TypeInteger
	TypeFloat
	TypeNumeric
	TypeSigned
	TypeUnsigned
	TypeDate
	TypeTime
	TypeTimestamp
	TypeChar
	TypeVarchar
	TypeLongVarchar
	TypeBinary
	TypeVarbinary
	TypeLongVarbinary
)

type sqlTypeInfo struct {
	name     string
	maxSizes int
}

var sqlTypes = [...]sqlTypeInfo{
	TypeBoolean:       {"BOOLEAN", 0},
	TypeInteger:       {"INTEGER", 0},
	TypeFloat:         {"FLOAT", 0},
	TypeNumeric:       {"NUMERIC", 2},
	TypeSigned:        {"SIGNED", 0},
	TypeUnsigned:      {"UNSIGNED", 0},
	TypeDate:          {"DATE", 0},
	TypeTime:          {"TIME", 0},
	TypeTimestamp:     {"TIMESTAMP", 0},
	TypeChar:          {"CHAR", 1},
	TypeVarchar:       {"VARCHAR", 1},
	TypeLongVarchar:   {"LONG VARCHAR", 0},
	TypeBinary:        {"BINARY", 1},
	TypeVarbinary:     {"VARBINARY", 1},
	TypeLongVarbinary: {"LONG VARBINARY", 0},
}

// String returns the SQL spelling of the type.
func (t SQLType) String() string { return sqlTypes[t].name }

// MaxSizes returns how many size arguments the type accepts.
func (t SQLType) MaxSizes() int { return sqlTypes[t].maxSizes }

// LookupSQLType finds a type by name, ignoring case and collapsing runs of
// whitespace so that "long   varchar" matches LONG VARCHAR.
func LookupSQLType(name string) (SQLType, bool) {
	norm := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	for i, info := range sqlTypes {
		if info.name == norm {
			return SQLType(i), true
		}
	}
	return 0, false
}

// SQLTypeNames returns every accepted type name in declaration order.
func SQLTypeNames() []string {
	out := make([]string, len(sqlTypes))
	for i, info := range sqlTypes {
		out[i] = info.name
	}
	return out
}

// CastNode represents CAST(Expr AS Type[(sizes)]).
type CastNode struct {
	Expr  Node
	Type  SQLType
	Sizes []int
}

func (n *CastNode) Accept(v Visitor) string { return v.VisitCast(n) }

// Cast creates a CAST expression.
func Cast(expr Node, typ SQLType, sizes ...int) *CastNode {
	return &CastNode{Expr: expr, Type: typ, Sizes: sizes}
}
