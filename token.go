package logicexpr

// TokenType represents the type of a token in the expression language.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenString
	TokenInt
	TokenFloat
	TokenBool

	// Comparison operators
	TokenEq    // ==
	TokenNe    // !=
	TokenLt    // <
	TokenGt    // >
	TokenLe    // <=
	TokenGe    // >=
	TokenMatch // =~

	// Recognized by the lexer but not part of the grammar.
	TokenAssign // =

	// Logical operators
	TokenAnd // &&
	TokenOr  // ||
	TokenNot // !

	// Delimiters
	TokenLParen // (
	TokenRParen // )

	TokenError // lexer error
)

var tokenNames = map[TokenType]string{
	TokenEOF:    "EOF",
	TokenIdent:  "IDENT",
	TokenString: "STRING",
	TokenInt:    "INT",
	TokenFloat:  "FLOAT",
	TokenBool:   "BOOL",
	TokenEq:     "==",
	TokenNe:     "!=",
	TokenLt:     "<",
	TokenGt:     ">",
	TokenLe:     "<=",
	TokenGe:     ">=",
	TokenMatch:  "=~",
	TokenAssign: "=",
	TokenAnd:    "&&",
	TokenOr:     "||",
	TokenNot:    "!",
	TokenLParen: "(",
	TokenRParen: ")",
	TokenError:  "ERROR",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsComparison reports whether the token type is a comparison operator.
func (t TokenType) IsComparison() bool {
	switch t {
	case TokenEq, TokenNe, TokenLt, TokenGt, TokenLe, TokenGe, TokenMatch:
		return true
	}
	return false
}

// isOperand reports whether a token of this type can start a comparison operand.
func (t TokenType) isOperand() bool {
	switch t {
	case TokenIdent, TokenString, TokenInt, TokenFloat:
		return true
	}
	return false
}

// Token represents a lexical token in the expression language.
type Token struct {
	Type    TokenType
	Literal string
	Value   any
	Pos     int // byte offset of the first character
}

// describe renders the token for error messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return "'" + t.Literal + "'"
	case TokenIdent, TokenInt, TokenFloat, TokenBool:
		return t.Literal
	}
	return "'" + t.Type.String() + "'"
}
