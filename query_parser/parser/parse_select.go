package parser

import (
	lex "BTreeDB/query_parser/lexer"

	"github.com/pkg/errors"
)

// --- SELECT <key|value|*|COUNT(*)> FROM <table> [WHERE cond [AND cond]...] ---
func (p *Parser) parseSelect() (*SelectStmt, error) {
	p.nextToken() // consume SELECT

	attr, err := p.parseAttr()
	if err != nil {
		return nil, err
	}

	if err := p.expectAndAdvance(lex.FROM); err != nil {
		return nil, errors.Wrap(err, "SELECT")
	}
	if err := p.expect(lex.IDENT); err != nil {
		return nil, errors.Wrap(err, "SELECT: table name")
	}
	stmt := &SelectStmt{Attr: attr, Table: p.curToken.Value}
	p.nextToken()

	if p.curToken.Kind != lex.WHERE {
		return stmt, nil
	}
	p.nextToken()

	for {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt.Conds = append(stmt.Conds, cond)

		if p.curToken.Kind != lex.AND {
			break
		}
		p.nextToken()
	}
	return stmt, nil
}

func (p *Parser) parseAttr() (Attr, error) {
	switch p.curToken.Kind {
	case lex.ASTERISK:
		p.nextToken()
		return AttrStar, nil
	case lex.COUNT:
		p.nextToken()
		for _, kind := range []lex.TokenKind{lex.OPENROUNDED, lex.ASTERISK, lex.CLOSEDROUNDED} {
			if err := p.expectAndAdvance(kind); err != nil {
				return 0, errors.Wrap(err, "SELECT COUNT(*)")
			}
		}
		return AttrCount, nil
	case lex.IDENT:
		col, ok := columnOf(p.curToken.Value)
		if !ok {
			return 0, errors.Wrapf(ErrUnexpectedToken, "SELECT: unknown attribute %q", p.curToken.Value)
		}
		p.nextToken()
		if col == ColumnKey {
			return AttrKey, nil
		}
		return AttrValue, nil
	}
	return 0, errors.Wrapf(ErrUnexpectedToken, "SELECT: expected attribute, got %s (%q)", p.curToken.Kind, p.curToken.Value)
}

// parseCondition parses `key op INT` or `value op literal`.
func (p *Parser) parseCondition() (SelCond, error) {
	if err := p.expect(lex.IDENT); err != nil {
		return SelCond{}, errors.Wrap(err, "WHERE")
	}
	col, ok := columnOf(p.curToken.Value)
	if !ok {
		return SelCond{}, errors.Wrapf(ErrUnexpectedToken, "WHERE: unknown attribute %q", p.curToken.Value)
	}
	p.nextToken()

	comp, ok := compOf(p.curToken.Kind)
	if !ok {
		return SelCond{}, errors.Wrapf(ErrUnexpectedToken, "WHERE: expected comparison, got %s (%q)", p.curToken.Kind, p.curToken.Value)
	}
	p.nextToken()

	cond := SelCond{Column: col, Comp: comp}
	switch {
	case col == ColumnKey && p.curToken.Kind == lex.INT:
		key, err := parseKey(p.curToken.Value)
		if err != nil {
			return SelCond{}, err
		}
		cond.Key = key
	case col == ColumnValue && (p.curToken.Kind == lex.STRING || p.curToken.Kind == lex.INT):
		cond.Value = p.curToken.Value
	default:
		return SelCond{}, errors.Wrapf(ErrUnexpectedToken, "WHERE: bad literal %s (%q)", p.curToken.Kind, p.curToken.Value)
	}
	p.nextToken()
	return cond, nil
}
