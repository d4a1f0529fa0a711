package parser

import (
	lex "BTreeDB/query_parser/lexer"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrEmptyStatement  = errors.New("empty statement")
	ErrInvalidKeyValue = errors.New("key literal is not a 32-bit integer")
)

type Parser struct {
	l         *lex.Lexer
	curToken  lex.Token
	peekToken lex.Token
}

func New(l *lex.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses a single statement.
func Parse(input string) (Statement, error) {
	return New(lex.New(input)).ParseStatement()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) expect(kind lex.TokenKind) error {
	if p.curToken.Kind != kind {
		return errors.Wrapf(ErrUnexpectedToken, "expected %s, got %s (%q)", kind, p.curToken.Kind, p.curToken.Value)
	}
	return nil
}

// expectAndAdvance checks the current token and moves past it.
func (p *Parser) expectAndAdvance(kind lex.TokenKind) error {
	if err := p.expect(kind); err != nil {
		return err
	}
	p.nextToken()
	return nil
}

// Entry point
func (p *Parser) ParseStatement() (Statement, error) {
	var stmt Statement
	var err error

	switch p.curToken.Kind {
	case lex.SELECT:
		stmt, err = p.parseSelect()
	case lex.LOAD:
		stmt, err = p.parseLoad()
	case lex.QUIT:
		p.nextToken()
		stmt = &QuitStmt{}
	case lex.END, lex.SEMICOLON:
		return nil, ErrEmptyStatement
	default:
		return nil, errors.Wrapf(ErrUnexpectedToken, "%s (%q) at start of statement", p.curToken.Kind, p.curToken.Value)
	}
	if err != nil {
		return nil, err
	}

	// optional trailing semicolon, then nothing
	if p.curToken.Kind == lex.SEMICOLON {
		p.nextToken()
	}
	if err := p.expect(lex.END); err != nil {
		return nil, errors.Wrap(err, "trailing input")
	}
	return stmt, nil
}

// --- LOAD <table> FROM <file> [WITH INDEX] ---
func (p *Parser) parseLoad() (*LoadStmt, error) {
	p.nextToken() // consume LOAD

	if err := p.expect(lex.IDENT); err != nil {
		return nil, errors.Wrap(err, "LOAD: table name")
	}
	stmt := &LoadStmt{Table: p.curToken.Value}
	p.nextToken()

	if err := p.expectAndAdvance(lex.FROM); err != nil {
		return nil, errors.Wrap(err, "LOAD")
	}

	if p.curToken.Kind != lex.STRING && p.curToken.Kind != lex.IDENT {
		return nil, errors.Wrapf(ErrUnexpectedToken, "LOAD: expected file name, got %s (%q)", p.curToken.Kind, p.curToken.Value)
	}
	stmt.File = p.curToken.Value
	p.nextToken()

	if p.curToken.Kind == lex.WITH {
		p.nextToken()
		if err := p.expectAndAdvance(lex.INDEX); err != nil {
			return nil, errors.Wrap(err, "LOAD ... WITH")
		}
		stmt.WithIndex = true
	}
	return stmt, nil
}

func parseKey(lit string) (int32, error) {
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errors.Wrapf(ErrInvalidKeyValue, "%q", lit)
	}
	return int32(v), nil
}

func columnOf(name string) (Column, bool) {
	switch strings.ToLower(name) {
	case "key":
		return ColumnKey, true
	case "value":
		return ColumnValue, true
	}
	return 0, false
}

func compOf(kind lex.TokenKind) (CompOp, bool) {
	switch kind {
	case lex.EQUAL:
		return EQ, true
	case lex.NOTEQUAL:
		return NE, true
	case lex.LESS:
		return LT, true
	case lex.GREATER:
		return GT, true
	case lex.LESSEQUAL:
		return LE, true
	case lex.GREATEREQUAL:
		return GE, true
	}
	return 0, false
}
