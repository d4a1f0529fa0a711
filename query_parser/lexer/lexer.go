package lex

import (
	"strings"
)

type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

func New(input string) *Lexer {
	l := &Lexer{
		input:   input,
		pos:     0,
		readPos: 0,
		ch:      0,
	}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() Token {
	l.skipWhiteSpaces()

	switch l.ch {
	case ',':
		return l.single(COMMA)
	case '*':
		return l.single(ASTERISK)
	case ';':
		return l.single(SEMICOLON)
	case '(':
		return l.single(OPENROUNDED)
	case ')':
		return l.single(CLOSEDROUNDED)
	case '=':
		return l.single(EQUAL)
	case '!':
		if l.peekChar() == '=' {
			return l.double(NOTEQUAL)
		}
		return l.single(INVALID)
	case '<':
		switch l.peekChar() {
		case '>':
			return l.double(NOTEQUAL)
		case '=':
			return l.double(LESSEQUAL)
		}
		return l.single(LESS)
	case '>':
		if l.peekChar() == '=' {
			return l.double(GREATEREQUAL)
		}
		return l.single(GREATER)
	case '"', '\'':
		str, ok := l.readString(l.ch)
		if !ok {
			return Token{Kind: INVALID, Value: str}
		}
		return Token{Kind: STRING, Value: str}
	case '-':
		if isNumber(l.peekChar()) {
			return Token{Kind: INT, Value: l.readNumber()}
		}
		return l.single(INVALID)
	case 0:
		return Token{Kind: END, Value: ""}
	default:
		if isLetter(l.ch) {
			str := l.keyIdentLookup() // str could be a keyword or an identifier
			return Token{Kind: KeyIdentKind(str), Value: str}
		} else if isNumber(l.ch) {
			return Token{Kind: INT, Value: l.readNumber()}
		} else {
			return l.single(INVALID)
		}
	}
}

func (l *Lexer) single(kind TokenKind) Token {
	tok := Token{Kind: kind, Value: string(l.ch)}
	l.readChar()
	return tok
}

func (l *Lexer) double(kind TokenKind) Token {
	start := l.pos
	l.readChar()
	l.readChar()
	return Token{Kind: kind, Value: l.input[start:l.pos]}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhiteSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isNumber(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// identifiers may contain digits after the first letter, and dots so that
// bare file names like movie.del lex as one token
func (l *Lexer) keyIdentLookup() string {
	start := l.pos
	for isLetter(l.ch) || isNumber(l.ch) || l.ch == '.' || l.ch == '/' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isNumber(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readString reads a string delimited by quote. ok is false when the input
// ends before the closing quote.
func (l *Lexer) readString(quote byte) (string, bool) {
	l.readChar() // read opening quote
	start := l.pos
	for l.ch != quote && l.ch != 0 { // read everything until the closing quote
		l.readChar()
	}
	str := l.input[start:l.pos]
	if l.ch == 0 {
		return str, false
	}
	l.readChar() // read closing quote
	return str, true
}

func KeyIdentKind(str string) TokenKind {
	switch strings.ToUpper(str) {
	case "SELECT":
		return SELECT
	case "FROM":
		return FROM
	case "WHERE":
		return WHERE
	case "AND":
		return AND
	case "COUNT":
		return COUNT
	case "LOAD":
		return LOAD
	case "WITH":
		return WITH
	case "INDEX":
		return INDEX
	case "QUIT", "EXIT":
		return QUIT
	default:
		return IDENT
	}
}
