package lex

type TokenKind int

const (
	// identifier
	IDENT TokenKind = iota

	// literals
	INT
	STRING

	// keywords
	SELECT
	FROM
	WHERE
	AND
	COUNT
	LOAD
	WITH
	INDEX
	QUIT

	// punctuation and operators
	COMMA
	ASTERISK
	SEMICOLON
	OPENROUNDED
	CLOSEDROUNDED
	EQUAL
	NOTEQUAL
	LESS
	GREATER
	LESSEQUAL
	GREATEREQUAL

	END
	INVALID
)

type Token struct {
	Kind  TokenKind
	Value string
}

func (tk TokenKind) String() string {
	switch tk {
	case IDENT:
		return "IDENT"
	case INT:
		return "INT"
	case STRING:
		return "STRING"
	case SELECT:
		return "SELECT"
	case FROM:
		return "FROM"
	case WHERE:
		return "WHERE"
	case AND:
		return "AND"
	case COUNT:
		return "COUNT"
	case LOAD:
		return "LOAD"
	case WITH:
		return "WITH"
	case INDEX:
		return "INDEX"
	case QUIT:
		return "QUIT"
	case COMMA:
		return "COMMA"
	case ASTERISK:
		return "ASTERISK"
	case SEMICOLON:
		return "SEMICOLON"
	case OPENROUNDED:
		return "OPENROUNDED"
	case CLOSEDROUNDED:
		return "CLOSEDROUNDED"
	case EQUAL:
		return "EQUAL"
	case NOTEQUAL:
		return "NOTEQUAL"
	case LESS:
		return "LESS"
	case GREATER:
		return "GREATER"
	case LESSEQUAL:
		return "LESSEQUAL"
	case GREATEREQUAL:
		return "GREATEREQUAL"
	case END:
		return "END"
	case INVALID:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}
