package compiler

import (
	"io"
	"reflect"
	"strconv"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 1, Column: 1},
			},
		},
		{
			name:  "Single Character Tokens",
			input: "( ) { } [ ] . , : @ + - * / ! = > < |",
			expected: []Token{
				{Type: LPAREN, Lexeme: "(", Line: 1, Column: 1},
				{Type: RPAREN, Lexeme: ")", Line: 1, Column: 3},
				{Type: LBRACE, Lexeme: "{", Line: 1, Column: 5},
				{Type: RBRACE, Lexeme: "}", Line: 1, Column: 7},
				{Type: LBRACKET, Lexeme: "[", Line: 1, Column: 9},
				{Type: RBRACKET, Lexeme: "]", Line: 1, Column: 11},
				{Type: DOT, Lexeme: ".", Line: 1, Column: 13},
				{Type: COMMA, Lexeme: ",", Line: 1, Column: 15},
				{Type: COLON, Lexeme: ":", Line: 1, Column: 17},
				{Type: AT, Lexeme: "@", Line: 1, Column: 19},
				{Type: PLUS, Lexeme: "+", Line: 1, Column: 21},
				{Type: MINUS, Lexeme: "-", Line: 1, Column: 23},
				{Type: STAR, Lexeme: "*", Line: 1, Column: 25},
				{Type: SLASH, Lexeme: "/", Line: 1, Column: 27},
				{Type: NOT, Lexeme: "!", Line: 1, Column: 29},
				{Type: ASSIGN, Lexeme: "=", Line: 1, Column: 31},
				{Type: GREATER, Lexeme: ">", Line: 1, Column: 33},
				{Type: LESS, Lexeme: "<", Line: 1, Column: 35},
				{Type: DIV, Lexeme: "|", Line: 1, Column: 37},
				{Type: EOF, Lexeme: "", Line: 1, Column: 38},
			},
		},
		{
			name:  "Two Character Operators",
			input: "-> == != >= <= += -= *= /= || && |>",
			expected: []Token{
				{Type: ARROW, Lexeme: "->", Line: 1, Column: 1},
				{Type: EQUALS, Lexeme: "==", Line: 1, Column: 4},
				{Type: NOT_EQ, Lexeme: "!=", Line: 1, Column: 7},
				{Type: GREATER_EQ, Lexeme: ">=", Line: 1, Column: 10},
				{Type: LESS_EQ, Lexeme: "<=", Line: 1, Column: 13},
				{Type: PLUS_ASSIGN, Lexeme: "+=", Line: 1, Column: 16},
				{Type: MINUS_ASSIGN, Lexeme: "-=", Line: 1, Column: 19},
				{Type: STAR_ASSIGN, Lexeme: "*=", Line: 1, Column: 22},
				{Type: SLASH_ASSIGN, Lexeme: "/=", Line: 1, Column: 25},
				{Type: OR, Lexeme: "||", Line: 1, Column: 28},
				{Type: AND, Lexeme: "&&", Line: 1, Column: 31},
				{Type: PIPE, Lexeme: "|>", Line: 1, Column: 34},
				{Type: EOF, Lexeme: "", Line: 1, Column: 36},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "let fn dump lets _x9 match",
			expected: []Token{
				{Type: LET, Lexeme: "let", Line: 1, Column: 1},
				{Type: FN, Lexeme: "fn", Line: 1, Column: 5},
				{Type: DUMP, Lexeme: "dump", Line: 1, Column: 8},
				{Type: IDENTIFIER, Lexeme: "lets", Line: 1, Column: 13},
				{Type: IDENTIFIER, Lexeme: "_x9", Line: 1, Column: 18},
				{Type: MATCH, Lexeme: "match", Line: 1, Column: 22},
				{Type: EOF, Lexeme: "", Line: 1, Column: 27},
			},
		},
		{
			name:  "Numbers",
			input: "12 3.25 7. 8.x",
			expected: []Token{
				{Type: INTEGER, Lexeme: "12", Line: 1, Column: 1},
				{Type: REAL, Lexeme: "3.25", Line: 1, Column: 4},
				{Type: INTEGER, Lexeme: "7", Line: 1, Column: 9},
				{Type: DOT, Lexeme: ".", Line: 1, Column: 10},
				{Type: INTEGER, Lexeme: "8", Line: 1, Column: 12},
				{Type: DOT, Lexeme: ".", Line: 1, Column: 13},
				{Type: IDENTIFIER, Lexeme: "x", Line: 1, Column: 14},
				{Type: EOF, Lexeme: "", Line: 1, Column: 15},
			},
		},
		{
			name:  "Lines and Comments",
			input: "1 // one\n/* two\nlines */ 2\r\n",
			expected: []Token{
				{Type: INTEGER, Lexeme: "1", Line: 1, Column: 1},
				{Type: EOL, Lexeme: "\n", Line: 1, Column: 9},
				{Type: INTEGER, Lexeme: "2", Line: 3, Column: 10},
				{Type: EOL, Lexeme: "\n", Line: 3, Column: 12},
				{Type: EOF, Lexeme: "", Line: 4, Column: 1},
			},
		},
		{
			name:  "Unclosed Block Comment",
			input: "1 /* never closed\n2",
			expected: []Token{
				{Type: INTEGER, Lexeme: "1", Line: 1, Column: 1},
				{Type: EOF, Lexeme: "", Line: 2, Column: 2},
			},
		},
		{
			name:  "Strings",
			input: "\"hi there\" \"open\n",
			expected: []Token{
				{Type: STRING, Lexeme: "\"hi there\"", Line: 1, Column: 1},
				{Type: ERROR, Lexeme: msgUnterminatedString, Line: 1, Column: 12},
				{Type: EOL, Lexeme: "\n", Line: 1, Column: 17},
				{Type: EOF, Lexeme: "", Line: 2, Column: 1},
			},
		},
		{
			name:  "Errors",
			input: "& # $",
			expected: []Token{
				{Type: ERROR, Lexeme: msgUnexpectedChar, Line: 1, Column: 1},
				{Type: ERROR, Lexeme: msgUnexpectedChar, Line: 1, Column: 3},
				{Type: ERROR, Lexeme: msgUnexpectedChar, Line: 1, Column: 5},
				{Type: EOF, Lexeme: "", Line: 1, Column: 6},
			},
		},
		{
			name:  "NUL Ends Input",
			input: "1\x002",
			expected: []Token{
				{Type: INTEGER, Lexeme: "1", Line: 1, Column: 1},
				{Type: EOF, Lexeme: "", Line: 1, Column: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex(%q)\ngot:  %v\nwant: %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScanAfterEOFAndReset(t *testing.T) {
	l := NewLexer("1.5 + x")
	first := Lex("1.5 + x")
	for i := 0; i < len(first)-1; i++ {
		l.Scan()
	}
	eof := l.Scan()
	if eof.Type != EOF {
		t.Fatalf("expected EOF, got %v", eof)
	}
	for i := 0; i < 5; i++ {
		if again := l.Scan(); again != eof {
			t.Fatalf("Scan after EOF = %v; want %v", again, eof)
		}
	}

	l.Reset()
	for i, want := range first {
		if got := l.Scan(); got != want {
			t.Errorf("token %d after Reset = %v; want %v", i, got, want)
		}
	}
}

func TestRealLiterals(t *testing.T) {
	inputs := []string{"0.0", "0.42", "3.14159", "123456789.000000001", "0.1", "99999999999999999999.5"}
	for _, in := range inputs {
		toks := Lex(in)
		if len(toks) != 2 || toks[0].Type != REAL || toks[0].Lexeme != in {
			t.Fatalf("Lex(%q) = %v; want one REAL token", in, toks)
		}
		expr, ok := NewParser(in, NewDiagnostics(io.Discard)).Parse()
		if !ok {
			t.Fatalf("Parse(%q) failed", in)
		}
		want, _ := strconv.ParseFloat(in, 64)
		got := expr.(*ValueExpr).Value.AsReal()
		if got != want {
			t.Errorf("Parse(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := PIPE.String(); got != "PIPE" {
		t.Errorf("PIPE.String() = %q", got)
	}
	if got := TokenType(999).String(); got != "TokenType(999)" {
		t.Errorf("TokenType(999).String() = %q", got)
	}
}
