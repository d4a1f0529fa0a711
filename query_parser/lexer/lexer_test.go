package lex

import "testing"

func TestNextToken(t *testing.T) {
	input := `SELECT count(*) FROM movie WHERE key >= -15 AND value <> 'Die Hard' and key!=3;`

	expected := []Token{
		{SELECT, "SELECT"},
		{COUNT, "count"},
		{OPENROUNDED, "("},
		{ASTERISK, "*"},
		{CLOSEDROUNDED, ")"},
		{FROM, "FROM"},
		{IDENT, "movie"},
		{WHERE, "WHERE"},
		{IDENT, "key"},
		{GREATEREQUAL, ">="},
		{INT, "-15"},
		{AND, "AND"},
		{IDENT, "value"},
		{NOTEQUAL, "<>"},
		{STRING, "Die Hard"},
		{AND, "and"},
		{IDENT, "key"},
		{NOTEQUAL, "!="},
		{INT, "3"},
		{SEMICOLON, ";"},
		{END, ""},
	}

	l := New(input)
	for i, want := range expected {
		got := l.NextToken()
		if got != want {
			t.Fatalf("token %d: expected %s(%q), got %s(%q)", i, want.Kind, want.Value, got.Kind, got.Value)
		}
	}
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"=", EQUAL},
		{"<", LESS},
		{">", GREATER},
		{"<=", LESSEQUAL},
		{">=", GREATEREQUAL},
		{"<>", NOTEQUAL},
		{"!=", NOTEQUAL},
		{"!", INVALID},
	}
	for _, tt := range tests {
		if got := New(tt.input).NextToken(); got.Kind != tt.kind {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.kind, got.Kind)
		}
	}
}

func TestLoadStatementTokens(t *testing.T) {
	l := New(`LOAD movie FROM "data/movie.del" WITH INDEX`)
	kinds := []TokenKind{LOAD, IDENT, FROM, STRING, WITH, INDEX, END}
	for i, want := range kinds {
		if got := l.NextToken(); got.Kind != want {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, want, got.Kind, got.Value)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	if got := New(`'abc`).NextToken(); got.Kind != INVALID {
		t.Errorf("Expected INVALID for an unterminated string, got %s", got.Kind)
	}
}
