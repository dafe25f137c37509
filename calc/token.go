package calc

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenEOF TokenType = "EOF"
	TokenInt TokenType = "INT"

	TokenPlus   TokenType = "+"
	TokenMinus  TokenType = "-"
	TokenStar   TokenType = "*"
	TokenSlash  TokenType = "/"
	TokenLParen TokenType = "("
	TokenRParen TokenType = ")"
)

// Token captures lexical information for the parser. Value is only set for
// integer tokens.
type Token struct {
	Type    TokenType
	Literal string
	Value   int64
	Pos     Position
}

// Position identifies a location in the source text. Offset is a byte
// offset; Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}
