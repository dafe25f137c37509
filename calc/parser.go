package calc

// parser is a one-token-lookahead recursive-descent parser for
//
//	expr   := term ( (PLUS | MINUS) term )*
//	term   := factor ( (STAR | SLASH) factor )*
//	factor := INTEGER | LPAREN expr RPAREN
type parser struct {
	l *lexer

	curToken Token

	depth         int
	maxDepth      int
	allowTrailing bool
}

func newParser(input string, cfg Config) (*parser, error) {
	p := &parser{
		l:             newLexer(input),
		maxDepth:      cfg.RecursionLimit,
		allowTrailing: cfg.AllowTrailingInput,
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) nextToken() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.curToken = tok
	return nil
}

// eat consumes the current token when it has type tt.
func (p *parser) eat(tt TokenType) error {
	if p.curToken.Type != tt {
		return p.errorExpected(p.curToken, tokenLabel(tt))
	}
	return p.nextToken()
}

// ParseExpression parses a complete expression. Unless trailing input is
// allowed, the whole input must be consumed.
func (p *parser) ParseExpression() (Node, error) {
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.allowTrailing && p.curToken.Type != TokenEOF {
		return nil, p.errorTrailing(p.curToken)
	}
	return node, nil
}

func (p *parser) parseExpr() (Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.curToken.Type == TokenPlus || p.curToken.Type == TokenMinus {
		op := p.curToken
		if err := p.eat(op.Type); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = &BinaryExpr{Operator: op.Type, Left: node, Right: right, position: op.Pos}
	}

	return node, nil
}

func (p *parser) parseTerm() (Node, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.curToken.Type == TokenStar || p.curToken.Type == TokenSlash {
		op := p.curToken
		if err := p.eat(op.Type); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node = &BinaryExpr{Operator: op.Type, Left: node, Right: right, position: op.Pos}
	}

	return node, nil
}

func (p *parser) parseFactor() (Node, error) {
	tok := p.curToken
	switch tok.Type {
	case TokenInt:
		if err := p.eat(TokenInt); err != nil {
			return nil, err
		}
		return &NumberLiteral{Value: tok.Value, position: tok.Pos}, nil
	case TokenLParen:
		return p.parseGroupedExpression()
	default:
		return nil, p.errorExpected(tok, "expression")
	}
}

func (p *parser) parseGroupedExpression() (Node, error) {
	open := p.curToken
	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, p.errorTooDeep(open)
	}

	if err := p.eat(TokenLParen); err != nil {
		return nil, err
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.eat(TokenRParen); err != nil {
		return nil, err
	}
	return node, nil
}
