package calc

import "fmt"

func (p *parser) errorExpected(tok Token, expected string) error {
	return p.parseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

func (p *parser) errorTrailing(tok Token) error {
	return p.parseError(tok.Pos, fmt.Sprintf("unexpected %s after expression", tokenLabel(tok.Type)))
}

func (p *parser) errorTooDeep(tok Token) error {
	return newError(KindLimit, fmt.Sprintf("expression nested too deeply (limit %d)", p.maxDepth), tok.Pos, p.l.input)
}

func (p *parser) parseError(pos Position, msg string) error {
	return newError(KindParsing, msg, pos, p.l.input)
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case TokenEOF:
		return "end of input"
	case TokenInt:
		return "integer"
	default:
		return fmt.Sprintf("%q", string(tt))
	}
}
