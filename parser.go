package logicexpr

import (
	"fmt"
)

// maxNestingDepth bounds parentheses and negations so that hostile input
// cannot exhaust the stack.
const maxNestingDepth = 256

// Parser builds an expression tree from a token sequence.
// It reads the tokens once, left to right, with one token of lookahead.
type Parser struct {
	tokens    []Token
	pos       int
	eofPos    int
	depth     int
	curToken  Token
	peekToken Token
}

// NewParser creates a new parser over the given tokens, typically produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	p := &Parser{tokens: tokens}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		p.eofPos = last.Pos
		if last.Type != TokenEOF {
			p.eofPos += len(last.Literal)
		}
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete expression.
// Lexical failures are reported as a *ParseError wrapping the *LexError.
func Parse(text string) (Expression, error) {
	tokens, bad, ok := tokenize(text)
	if !ok {
		lexErr := lexError(bad)
		return nil, &ParseError{Pos: lexErr.Pos, Token: bad, Msg: lexErr.Msg, Err: lexErr}
	}
	return NewParser(tokens).Parse()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
		return
	}
	p.peekToken = Token{Type: TokenEOF, Pos: p.eofPos}
}

// Parse parses the tokens and returns the root expression.
// Returns an error if parsing fails or if there is trailing input.
func (p *Parser) Parse() (Expression, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	switch p.peekToken.Type {
	case TokenEOF:
		return expr, nil
	case TokenRParen:
		return nil, p.errorAt(p.peekToken, "unmatched parenthesis ')'")
	}
	return nil, p.unexpected(p.peekToken, "'&&', '||' or end of input")
}

func (p *Parser) parseOr() (Expression, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.peekToken.Type != TokenOr {
		return first, nil
	}

	operands := []Expression{first}
	for p.peekToken.Type == TokenOr {
		p.nextToken() // consume ||
		p.nextToken()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return &OrExpr{Operands: operands}, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	first, err := p.parseBooleanValue()
	if err != nil {
		return nil, err
	}
	if p.peekToken.Type != TokenAnd {
		return first, nil
	}

	operands := []Expression{first}
	for p.peekToken.Type == TokenAnd {
		p.nextToken() // consume &&
		p.nextToken()
		next, err := p.parseBooleanValue()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return &AndExpr{Operands: operands}, nil
}

func (p *Parser) parseBooleanValue() (Expression, error) {
	switch p.curToken.Type {
	case TokenNot:
		return p.parseNotExpression()
	case TokenLParen:
		return p.parseGroupedExpression()
	case TokenBool:
		b, ok := p.curToken.Value.(bool)
		if !ok {
			return nil, p.malformed(p.curToken)
		}
		return &BoolLiteral{Value: b}, nil
	case TokenIdent, TokenString, TokenInt, TokenFloat:
		if p.peekToken.Type.IsComparison() {
			return p.parseComparisonExpression()
		}
		if p.peekToken.Type == TokenAssign {
			return nil, p.unexpected(p.peekToken, "")
		}
		// A bare identifier is a boolean reference, a bare literal is not.
		if p.curToken.Type == TokenIdent {
			return &IdentExpr{Name: p.curToken.Literal}, nil
		}
		return nil, p.errorAt(p.peekToken, fmt.Sprintf("expected comparison operator after %s, got %s",
			p.curToken.describe(), p.peekToken.describe()))
	}
	return nil, p.unexpected(p.curToken, "expression")
}

func (p *Parser) parseNotExpression() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.nextToken() // consume !
	operand, err := p.parseBooleanValue()
	if err != nil {
		return nil, err
	}
	return &NotExpr{Operand: operand}, nil
}

func (p *Parser) parseGroupedExpression() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open := p.curToken
	p.nextToken() // consume (
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	switch p.peekToken.Type {
	case TokenRParen:
		p.nextToken()
		return &GroupExpr{Inner: inner}, nil
	case TokenEOF:
		return nil, p.errorAt(open, "unmatched parenthesis '('")
	}
	return nil, p.unexpected(p.peekToken, "')'")
}

func (p *Parser) parseComparisonExpression() (Expression, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	p.nextToken()
	operator := p.curToken.Type

	p.nextToken()
	if !p.curToken.Type.isOperand() {
		return nil, p.unexpected(p.curToken, "identifier or literal after "+operator.String())
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	if p.peekToken.Type.IsComparison() {
		return nil, p.errorAt(p.peekToken, "comparison operators cannot be chained")
	}

	return &ComparisonExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}, nil
}

func (p *Parser) parseOperand() (Operand, error) {
	switch p.curToken.Type {
	case TokenString:
		return &LiteralExpr{Value: StringValue(p.curToken.Literal)}, nil
	case TokenInt:
		n, ok := p.curToken.Value.(int64)
		if !ok {
			return nil, p.malformed(p.curToken)
		}
		return &LiteralExpr{Value: IntValue(n)}, nil
	case TokenFloat:
		f, ok := p.curToken.Value.(float64)
		if !ok {
			return nil, p.malformed(p.curToken)
		}
		return &LiteralExpr{Value: FloatValue(f)}, nil
	}
	return &IdentExpr{Name: p.curToken.Literal}, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return p.errorAt(p.curToken, fmt.Sprintf("expression nested deeper than %d levels", maxNestingDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) errorAt(tok Token, msg string) *ParseError {
	return &ParseError{Pos: tok.Pos, Token: tok, Msg: msg}
}

// malformed reports a literal token whose Value does not match its type,
// which only happens with tokens that were not produced by the lexer.
func (p *Parser) malformed(tok Token) *ParseError {
	return p.errorAt(tok, fmt.Sprintf("malformed %s literal %q", tok.Type, tok.Literal))
}

// unexpected reports tok where something else was required.
func (p *Parser) unexpected(tok Token, expected string) *ParseError {
	switch tok.Type {
	case TokenAssign:
		return p.errorAt(tok, "operator '=' is not supported, use '=='")
	case TokenError:
		msg, _ := tok.Value.(string)
		return p.errorAt(tok, msg)
	}

	msg := "unexpected token " + tok.describe()
	if tok.Type == TokenEOF {
		msg = "unexpected end of input"
	}
	if expected != "" {
		msg += ", expected " + expected
	}
	return p.errorAt(tok, msg)
}
