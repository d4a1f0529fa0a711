package parser

// Statement is a generic interface for all statements
type Statement interface{}

// Attr is the projection of a SELECT.
type Attr int

const (
	AttrKey Attr = iota + 1
	AttrValue
	AttrStar
	AttrCount
)

func (a Attr) String() string {
	switch a {
	case AttrKey:
		return "key"
	case AttrValue:
		return "value"
	case AttrStar:
		return "*"
	case AttrCount:
		return "count(*)"
	default:
		return "unknown"
	}
}

// Column is what a WHERE condition compares against.
type Column int

const (
	ColumnKey Column = iota + 1
	ColumnValue
)

type CompOp int

const (
	EQ CompOp = iota
	NE
	LT
	GT
	LE
	GE
)

func (c CompOp) String() string {
	switch c {
	case EQ:
		return "="
	case NE:
		return "<>"
	case LT:
		return "<"
	case GT:
		return ">"
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "?"
	}
}

// SelCond is one `column op literal` condition. Key conditions carry the
// parsed integer in Key, value conditions the literal in Value.
type SelCond struct {
	Column Column
	Comp   CompOp
	Key    int32
	Value  string
}

// SELECT statement
type SelectStmt struct {
	Attr  Attr
	Table string
	Conds []SelCond // ANDed
}

// LOAD statement
type LoadStmt struct {
	Table     string
	File      string
	WithIndex bool
}

// QUIT / EXIT
type QuitStmt struct{}
