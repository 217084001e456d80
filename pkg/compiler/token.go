package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF   TokenType = iota // sentinel: end of input
	EOL                    // end of line, significant
	ERROR                  // lexical error; Lexeme holds the message

	// Paired delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// Punctuation
	DOT   // .
	COMMA // ,
	COLON // :

	// Operators
	PLUS         // +
	PLUS_ASSIGN  // +=
	MINUS        // -
	MINUS_ASSIGN // -=
	ARROW        // ->
	STAR         // *
	STAR_ASSIGN  // *=
	SLASH        // /
	SLASH_ASSIGN // /=
	AT           // @
	NOT          // !
	NOT_EQ       // !=
	ASSIGN       // =
	EQUALS       // ==
	GREATER      // >
	GREATER_EQ   // >=
	LESS         // <
	LESS_EQ      // <=
	DIV          // | (integer division)
	PIPE         // |>
	OR           // ||
	AND          // &&

	// Keywords
	PACKAGE // "package"
	IMPORT  // "import"
	STRUCT  // "struct"
	SELF    // "self"
	LET     // "let"
	NIL     // "nil"
	FN      // "fn"
	RETURN  // "return"
	IF      // "if"
	ELSE    // "else"
	WHILE   // "while"
	FOR     // "for"
	TRUE    // "true"
	FALSE   // "false"
	MATCH   // "match"
	WITH    // "with"
	DUMP    // "dump"

	// Literals
	IDENTIFIER // name
	STRING     // "..."
	REAL       // 1.5
	INTEGER    // 15

	tokenTypeCount
)

var tokenNames = [...]string{
	EOF:          "EOF",
	EOL:          "EOL",
	ERROR:        "ERROR",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	LBRACKET:     "LBRACKET",
	RBRACKET:     "RBRACKET",
	DOT:          "DOT",
	COMMA:        "COMMA",
	COLON:        "COLON",
	PLUS:         "PLUS",
	PLUS_ASSIGN:  "PLUS_ASSIGN",
	MINUS:        "MINUS",
	MINUS_ASSIGN: "MINUS_ASSIGN",
	ARROW:        "ARROW",
	STAR:         "STAR",
	STAR_ASSIGN:  "STAR_ASSIGN",
	SLASH:        "SLASH",
	SLASH_ASSIGN: "SLASH_ASSIGN",
	AT:           "AT",
	NOT:          "NOT",
	NOT_EQ:       "NOT_EQ",
	ASSIGN:       "ASSIGN",
	EQUALS:       "EQUALS",
	GREATER:      "GREATER",
	GREATER_EQ:   "GREATER_EQ",
	LESS:         "LESS",
	LESS_EQ:      "LESS_EQ",
	DIV:          "DIV",
	PIPE:         "PIPE",
	OR:           "OR",
	AND:          "AND",
	PACKAGE:      "PACKAGE",
	IMPORT:       "IMPORT",
	STRUCT:       "STRUCT",
	SELF:         "SELF",
	LET:          "LET",
	NIL:          "NIL",
	FN:           "FN",
	RETURN:       "RETURN",
	IF:           "IF",
	ELSE:         "ELSE",
	WHILE:        "WHILE",
	FOR:          "FOR",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	MATCH:        "MATCH",
	WITH:         "WITH",
	DUMP:         "DUMP",
	IDENTIFIER:   "IDENTIFIER",
	STRING:       "STRING",
	REAL:         "REAL",
	INTEGER:      "INTEGER",
}

// tokenNames must name every TokenType.
var _ = [1]struct{}{}[len(tokenNames)-int(tokenTypeCount)]

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the matched source text, or the message for ERROR
	Line   int    // 1-based source line
	Column int    // 1-based column of the first character
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d col %d", t.Type, t.Lexeme, t.Line, t.Column)
}
