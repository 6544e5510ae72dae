package logicexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASTNodeInterfaces(t *testing.T) {
	t.Run("expressions implement Node and Expression", func(t *testing.T) {
		exprs := []Expression{
			&OrExpr{},
			&AndExpr{},
			&NotExpr{},
			&ComparisonExpr{},
			&BoolLiteral{},
			&IdentExpr{},
			&GroupExpr{},
		}
		for _, expr := range exprs {
			expr.node()
			expr.expression()
			var _ Node = expr
			assert.NotNil(t, expr)
		}
	})

	t.Run("operands implement Node and Operand", func(t *testing.T) {
		operands := []Operand{
			&IdentExpr{},
			&LiteralExpr{},
		}
		for _, operand := range operands {
			operand.node()
			operand.operand()
			var _ Node = operand
			assert.NotNil(t, operand)
		}
	})
}

func TestASTString(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tests := []string{
			`a`,
			`true`,
			`!false`,
			`a && b || c`,
			`a && (b || c)`,
			`!(1 == 1)`,
			`name =~ '^ba+r$'`,
			`2 > 1.5`,
			`x != ''`,
			`http.status >= 400 && http.status <= 599`,
			`!!(a || !b) && c`,
		}

		for _, input := range tests {
			expr, err := Parse(input)
			require.NoError(t, err, input)
			assert.Equal(t, input, expr.String())
		}
	})

	t.Run("canonical spacing", func(t *testing.T) {
		expr, err := Parse("( a&&b )||!c==1")
		require.NoError(t, err)
		assert.Equal(t, "(a && b) || !c == 1", expr.String())
	})

	t.Run("float literals keep their fraction", func(t *testing.T) {
		lit := &LiteralExpr{Value: FloatValue(2)}
		assert.Equal(t, "2.0", lit.String())
	})

	t.Run("hand-built trees keep precedence", func(t *testing.T) {
		expr := &AndExpr{Operands: []Expression{
			&OrExpr{Operands: []Expression{&IdentExpr{Name: "a"}, &IdentExpr{Name: "b"}}},
			&IdentExpr{Name: "c"},
		}}
		assert.Equal(t, "(a || b) && c", expr.String())

		not := &NotExpr{Operand: &AndExpr{Operands: []Expression{&IdentExpr{Name: "a"}, &IdentExpr{Name: "b"}}}}
		assert.Equal(t, "!(a && b)", not.String())
	})
}
