package logicexpr

import (
	"strconv"
	"unicode/utf8"
)

// Lexer tokenizes expression strings into tokens.
type Lexer struct {
	input string
	pos   int
	ch    byte
}

// NewLexer creates a new lexer for the given input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize consumes the whole input and returns its tokens terminated by TokenEOF.
// The first invalid token aborts tokenization with a *LexError.
func Tokenize(input string) ([]Token, error) {
	tokens, bad, ok := tokenize(input)
	if !ok {
		return nil, lexError(bad)
	}
	return tokens, nil
}

// tokenize returns the tokens of input, or the first error token and false.
func tokenize(input string) ([]Token, Token, bool) {
	l := NewLexer(input)
	tokens := make([]Token, 0, len(input)/2+1)
	for {
		tok := l.NextToken()
		if tok.Type == TokenError {
			return nil, tok, false
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, Token{}, true
		}
	}
}

func lexError(tok Token) *LexError {
	msg, _ := tok.Value.(string)
	return &LexError{Pos: tok.Pos, Msg: msg}
}

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// offset is the byte offset of the current character.
func (l *Lexer) offset() int {
	return l.pos - 1
}

func (l *Lexer) atEnd() bool {
	return l.pos > len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readOperatorToken handles operators, preferring the two-character forms.
func (l *Lexer) readOperatorToken() (Token, bool) {
	start := l.offset()
	switch l.ch {
	case '=':
		switch l.peekChar() {
		case '=':
			l.readChar()
			return Token{Type: TokenEq, Literal: "==", Pos: start}, true
		case '~':
			l.readChar()
			return Token{Type: TokenMatch, Literal: "=~", Pos: start}, true
		}
		return Token{Type: TokenAssign, Literal: "=", Pos: start}, true
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return Token{Type: TokenNe, Literal: "!=", Pos: start}, true
		}
		return Token{Type: TokenNot, Literal: "!", Pos: start}, true
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			return Token{Type: TokenLe, Literal: "<=", Pos: start}, true
		}
		return Token{Type: TokenLt, Literal: "<", Pos: start}, true
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			return Token{Type: TokenGe, Literal: ">=", Pos: start}, true
		}
		return Token{Type: TokenGt, Literal: ">", Pos: start}, true
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			return Token{Type: TokenAnd, Literal: "&&", Pos: start}, true
		}
		return errorToken(start, "&", "unexpected character '&', did you mean '&&'"), true
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			return Token{Type: TokenOr, Literal: "||", Pos: start}, true
		}
		return errorToken(start, "|", "unexpected character '|', did you mean '||'"), true
	case '(':
		return Token{Type: TokenLParen, Literal: "(", Pos: start}, true
	case ')':
		return Token{Type: TokenRParen, Literal: ")", Pos: start}, true
	}
	return Token{}, false
}

// NextToken returns the next token from the input.
// Invalid input yields a TokenError token whose Value holds the message.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Type: TokenEOF, Pos: len(l.input)}
	}

	if tok, ok := l.readOperatorToken(); ok {
		l.readChar()
		return tok
	}

	switch {
	case l.ch == '\'':
		return l.readStringToken()
	case isLetter(l.ch) || l.ch == '_':
		return l.readIdentifierToken()
	case isDigit(l.ch):
		return l.readNumberToken()
	}

	start := l.offset()
	r, size := utf8.DecodeRuneInString(l.input[start:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return errorToken(start, string(r), "unexpected character "+strconv.QuoteRune(r))
}

func errorToken(pos int, literal, msg string) Token {
	return Token{Type: TokenError, Literal: literal, Value: msg, Pos: pos}
}

// readStringToken reads a single-quoted literal. The content is taken verbatim.
func (l *Lexer) readStringToken() Token {
	start := l.offset()
	l.readChar() // consume opening '
	contentStart := l.offset()

	for l.ch != '\'' && !l.atEnd() {
		l.readChar()
	}

	if l.atEnd() {
		return errorToken(start, l.input[start:], "unterminated string literal")
	}

	literal := l.input[contentStart:l.offset()]
	l.readChar() // consume closing '
	return Token{Type: TokenString, Literal: literal, Value: literal, Pos: start}
}

func (l *Lexer) readIdentifier() string {
	start := l.offset()
	for {
		switch {
		case isLetter(l.ch) || isDigit(l.ch) || l.ch == '_':
			l.readChar()
		case l.ch == '.' && (isLetter(l.peekChar()) || l.peekChar() == '_'):
			l.readChar()
		default:
			return l.input[start:l.offset()]
		}
	}
}

func (l *Lexer) readIdentifierToken() Token {
	start := l.offset()
	literal := l.readIdentifier()
	tok := Token{Type: TokenIdent, Literal: literal, Value: literal, Pos: start}

	switch literal {
	case "true":
		tok.Type = TokenBool
		tok.Value = true
	case "false":
		tok.Type = TokenBool
		tok.Value = false
	}
	return tok
}

func (l *Lexer) readDigits() {
	for isDigit(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readNumberToken() Token {
	start := l.offset()
	l.readDigits()

	if l.ch != '.' {
		literal := l.input[start:l.offset()]
		val, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return errorToken(start, literal, "integer out of range: "+literal)
		}
		return Token{Type: TokenInt, Literal: literal, Value: val, Pos: start}
	}

	if !isDigit(l.peekChar()) {
		l.readChar()
		literal := l.input[start:l.offset()]
		return errorToken(start, literal, "malformed number: "+literal)
	}

	l.readChar() // consume .
	l.readDigits()
	literal := l.input[start:l.offset()]
	val, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return errorToken(start, literal, "float out of range: "+literal)
	}
	return Token{Type: TokenFloat, Literal: literal, Value: val, Pos: start}
}

// isLetter checks if the byte is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit checks if the byte is an ASCII digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
