package calc

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	// offset and width describe ch; width is zero once input is exhausted.
	offset int
	width  int

	line   int
	column int

	ch  rune
	err error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 1}
	l.decode()
	return l
}

func (l *lexer) decode() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.offset:])
}

func (l *lexer) readRune() {
	if l.atEOF() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.offset += l.width
	l.decode()
}

func (l *lexer) atEOF() bool {
	return l.width == 0
}

func (l *lexer) position() Position {
	return Position{Offset: l.offset, Line: l.line, Column: l.column}
}

// NextToken returns the next token of the input. Once the input is
// exhausted every call yields an EOF token. After a lexical error the lexer
// stops and keeps returning that error.
func (l *lexer) NextToken() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	l.skipWhitespace()

	pos := l.position()
	if l.atEOF() {
		return Token{Type: TokenEOF, Pos: pos}, nil
	}

	var tok Token
	switch l.ch {
	case '+':
		tok = makeToken(TokenPlus, "+", pos)
	case '-':
		tok = makeToken(TokenMinus, "-", pos)
	case '*':
		tok = makeToken(TokenStar, "*", pos)
	case '/':
		tok = makeToken(TokenSlash, "/", pos)
	case '(':
		tok = makeToken(TokenLParen, "(", pos)
	case ')':
		tok = makeToken(TokenRParen, ")", pos)
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		l.err = l.illegalRune(pos)
		return Token{}, l.err
	}

	l.readRune()
	return tok, nil
}

func makeToken(tt TokenType, literal string, pos Position) Token {
	return Token{Type: tt, Literal: literal, Pos: pos}
}

func (l *lexer) skipWhitespace() {
	for !l.atEOF() && unicode.IsSpace(l.ch) {
		l.readRune()
	}
}

func (l *lexer) readNumber() (Token, error) {
	pos := l.position()
	start := l.offset
	for !l.atEOF() && isDigit(l.ch) {
		l.readRune()
	}
	literal := l.input[start:l.offset]

	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		l.err = newError(KindLexical, fmt.Sprintf("integer literal %s out of range", literal), pos, l.input)
		return Token{}, l.err
	}
	return Token{Type: TokenInt, Literal: literal, Value: value, Pos: pos}, nil
}

func (l *lexer) illegalRune(pos Position) error {
	if l.ch == utf8.RuneError && l.width == 1 {
		return newError(KindLexical, fmt.Sprintf("invalid UTF-8 byte 0x%02x", l.input[l.offset]), pos, l.input)
	}
	return newError(KindLexical, fmt.Sprintf("unexpected character %q", l.ch), pos, l.input)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize splits text into its full token sequence, ending with EOF.
func Tokenize(text string) ([]Token, error) {
	l := newLexer(text)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
