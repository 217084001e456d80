package compiler

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"package": PACKAGE,
	"import":  IMPORT,
	"struct":  STRUCT,
	"self":    SELF,
	"let":     LET,
	"nil":     NIL,
	"fn":      FN,
	"return":  RETURN,
	"if":      IF,
	"else":    ELSE,
	"while":   WHILE,
	"for":     FOR,
	"true":    TRUE,
	"false":   FALSE,
	"match":   MATCH,
	"with":    WITH,
	"dump":    DUMP,
}

// Lexer messages carried by ERROR tokens.
const (
	msgUnexpectedChar     = "Unexpected character"
	msgUnterminatedString = "Unterminated string literal"
)

// Lexer hands out tokens one at a time. Past the end of input it keeps
// returning EOF until Reset is called. A NUL byte also ends the input.
type Lexer struct {
	src    string
	start  int // offset of the token being scanned
	pos    int // offset of the next byte to consume
	line   int // current 1-based line
	column int // column of the last consumed byte on the current line

	tokLine   int
	tokColumn int
}

func NewLexer(src string) *Lexer {
	l := &Lexer{src: src}
	l.Reset()
	return l
}

// Reset rewinds to the start of the source.
func (l *Lexer) Reset() {
	l.start = 0
	l.pos = 0
	l.line = 1
	l.column = 0
}

// Lex scans src to the end and returns every token including the final EOF.
func Lex(src string) []Token {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.Scan()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Scan returns the next token.
func (l *Lexer) Scan() Token {
	l.skipTrivia()
	l.start = l.pos
	l.tokLine = l.line
	l.tokColumn = l.column + 1

	if l.atEnd() {
		return l.makeToken(EOF)
	}

	c := l.advance()
	if isAlpha(c) {
		return l.scanIdent()
	}
	if isDigit(c) {
		return l.scanNumber()
	}

	switch c {
	case '\n':
		return l.makeToken(EOL)
	case '(':
		return l.makeToken(LPAREN)
	case ')':
		return l.makeToken(RPAREN)
	case '{':
		return l.makeToken(LBRACE)
	case '}':
		return l.makeToken(RBRACE)
	case '[':
		return l.makeToken(LBRACKET)
	case ']':
		return l.makeToken(RBRACKET)
	case '.':
		return l.makeToken(DOT)
	case ',':
		return l.makeToken(COMMA)
	case ':':
		return l.makeToken(COLON)
	case '@':
		return l.makeToken(AT)
	case '+':
		return l.makeToken(l.either('=', PLUS_ASSIGN, PLUS))
	case '*':
		return l.makeToken(l.either('=', STAR_ASSIGN, STAR))
	case '/':
		return l.makeToken(l.either('=', SLASH_ASSIGN, SLASH))
	case '!':
		return l.makeToken(l.either('=', NOT_EQ, NOT))
	case '=':
		return l.makeToken(l.either('=', EQUALS, ASSIGN))
	case '>':
		return l.makeToken(l.either('=', GREATER_EQ, GREATER))
	case '<':
		return l.makeToken(l.either('=', LESS_EQ, LESS))
	case '-':
		if l.match('>') {
			return l.makeToken(ARROW)
		}
		return l.makeToken(l.either('=', MINUS_ASSIGN, MINUS))
	case '|':
		if l.match('>') {
			return l.makeToken(PIPE)
		}
		return l.makeToken(l.either('|', OR, DIV))
	case '&':
		if l.match('&') {
			return l.makeToken(AND)
		}
	case '"':
		return l.scanString()
	}
	return l.errorToken(msgUnexpectedChar)
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src) || l.src[l.pos] == 0
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek2() byte {
	if l.atEnd() || l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one byte and returns it.
func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return c
}

// match consumes the next byte if it is want.
func (l *Lexer) match(want byte) bool {
	if l.atEnd() || l.src[l.pos] != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) either(next byte, two, one TokenType) TokenType {
	if l.match(next) {
		return two
	}
	return one
}

// skipTrivia discards blanks and comments. Newlines are tokens and stay.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '/':
			switch l.peek2() {
			case '/':
				l.skipLineComment()
			case '*':
				l.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

// skipLineComment discards everything up to, not including, the newline.
func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing
// "*/". An unclosed comment runs to the end of input.
func (l *Lexer) skipBlockComment() {
	l.advance() // /
	l.advance() // *
	for !l.atEnd() {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

// scanIdent finishes an identifier or keyword whose first byte is consumed.
func (l *Lexer) scanIdent() Token {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	if kw, ok := keywords[l.src[l.start:l.pos]]; ok {
		return l.makeToken(kw)
	}
	return l.makeToken(IDENTIFIER)
}

// scanNumber finishes an INTEGER or REAL literal. A dot only belongs to the
// number when a digit follows it.
func (l *Lexer) scanNumber() Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() != '.' || !isDigit(l.peek2()) {
		return l.makeToken(INTEGER)
	}
	l.advance() // .
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.makeToken(REAL)
}

// scanString finishes a string literal. Strings end on the same line.
func (l *Lexer) scanString() Token {
	for !l.atEnd() && l.peek() != '"' && l.peek() != '\n' {
		l.advance()
	}
	if l.atEnd() || l.peek() == '\n' {
		return l.errorToken(msgUnterminatedString)
	}
	l.advance() // closing quote
	return l.makeToken(STRING)
}

func (l *Lexer) makeToken(tt TokenType) Token {
	return Token{Type: tt, Lexeme: l.src[l.start:l.pos], Line: l.tokLine, Column: l.tokColumn}
}

func (l *Lexer) errorToken(msg string) Token {
	return Token{Type: ERROR, Lexeme: msg, Line: l.tokLine, Column: l.tokColumn}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
