package compiler

// Precedence orders operator binding strength, weakest first.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * / |
	PrecUnary                 // -
	PrecCall                  // . ()
	PrecPrimary
)

type (
	prefixFn func(p *Parser) Expr
	infixFn  func(p *Parser, left Expr) Expr
)

// parseRule says how a token parses at the start of an expression (prefix),
// after a complete left operand (infix), and how tightly it binds as an
// infix operator.
type parseRule struct {
	prefix     prefixFn
	infix      infixFn
	precedence Precedence
}

// rules is indexed by TokenType. Tokens without an entry neither start nor
// continue an expression.
var rules [tokenTypeCount]parseRule

func init() {
	rules[LPAREN] = parseRule{prefix: (*Parser).parseGrouping}
	rules[MINUS] = parseRule{prefix: (*Parser).parseUnary, infix: (*Parser).parseBinary, precedence: PrecTerm}
	rules[PLUS] = parseRule{infix: (*Parser).parseBinary, precedence: PrecTerm}
	rules[STAR] = parseRule{infix: (*Parser).parseBinary, precedence: PrecFactor}
	rules[SLASH] = parseRule{infix: (*Parser).parseBinary, precedence: PrecFactor}
	rules[DIV] = parseRule{infix: (*Parser).parseBinary, precedence: PrecFactor}
	rules[REAL] = parseRule{prefix: (*Parser).parseReal}
	rules[INTEGER] = parseRule{prefix: (*Parser).parseInteger}
}

func getRule(tt TokenType) *parseRule {
	return &rules[tt]
}
