package logicexpr

import "strings"

// Node is the base interface for all AST nodes.
// String renders the node back into expression source.
type Node interface {
	node()
	String() string
}

// Expression is a node that evaluates to a boolean.
type Expression interface {
	Node
	expression()
}

// Operand is a node that evaluates to a Value: a literal or an identifier.
type Operand interface {
	Node
	operand()
}

// OrExpr is a flattened disjunction (e.g., a || b || c).
type OrExpr struct {
	Operands []Expression
}

func (o *OrExpr) node()       {}
func (o *OrExpr) expression() {}
func (o *OrExpr) String() string {
	return joinExpressions(o.Operands, " || ", false)
}

// AndExpr is a flattened conjunction (e.g., a && b && c).
type AndExpr struct {
	Operands []Expression
}

func (a *AndExpr) node()       {}
func (a *AndExpr) expression() {}
func (a *AndExpr) String() string {
	return joinExpressions(a.Operands, " && ", true)
}

// NotExpr represents logical negation (e.g., !expr).
type NotExpr struct {
	Operand Expression
}

func (n *NotExpr) node()       {}
func (n *NotExpr) expression() {}
func (n *NotExpr) String() string {
	switch n.Operand.(type) {
	case *OrExpr, *AndExpr:
		return "!(" + n.Operand.String() + ")"
	}
	return "!" + n.Operand.String()
}

// ComparisonExpr compares two operands (e.g., count >= 10, name =~ '^a').
type ComparisonExpr struct {
	Left     Operand
	Operator TokenType
	Right    Operand
}

func (c *ComparisonExpr) node()       {}
func (c *ComparisonExpr) expression() {}
func (c *ComparisonExpr) String() string {
	return c.Left.String() + " " + c.Operator.String() + " " + c.Right.String()
}

// BoolLiteral represents the keywords true and false.
type BoolLiteral struct {
	Value bool
}

func (b *BoolLiteral) node()       {}
func (b *BoolLiteral) expression() {}
func (b *BoolLiteral) String() string {
	return BoolValue(b.Value).String()
}

// IdentExpr references a context value by name.
// As an Expression it must resolve to a boolean; as an Operand it may have any type.
type IdentExpr struct {
	Name string
}

func (i *IdentExpr) node()          {}
func (i *IdentExpr) expression()    {}
func (i *IdentExpr) operand()       {}
func (i *IdentExpr) String() string { return i.Name }

// GroupExpr is a parenthesized expression. It does not affect evaluation.
type GroupExpr struct {
	Inner Expression
}

func (g *GroupExpr) node()       {}
func (g *GroupExpr) expression() {}
func (g *GroupExpr) String() string {
	return "(" + g.Inner.String() + ")"
}

// LiteralExpr is a string, integer or float literal used as an operand.
type LiteralExpr struct {
	Value Value
}

func (l *LiteralExpr) node()    {}
func (l *LiteralExpr) operand() {}
func (l *LiteralExpr) String() string {
	if s, ok := l.Value.(StringValue); ok {
		return "'" + string(s) + "'"
	}
	return l.Value.String()
}

func joinExpressions(exprs []Expression, sep string, groupOr bool) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		_, isOr := e.(*OrExpr)
		if groupOr && isOr {
			parts[i] = "(" + e.String() + ")"
			continue
		}
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}
