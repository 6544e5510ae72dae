// Package logicexpr implements a small logical expression language and its evaluator.
// An expression is parsed into a tree and evaluated to a boolean against a Context of
// typed values.
//
// The language supports:
//   - Logical operators: ||, &&, ! (loosest to tightest)
//   - Comparison operators: ==, !=, <, >, <=, >=
//   - Regular expression search: =~ (RE2 syntax, unanchored)
//   - Grouping with parentheses
//   - Literals: 'string' (no escapes), 42, 4.2, true, false
//   - Identifiers resolved through the context: foo, http.host
//
// Integers and floats compare numerically, with integers promoted to float when the
// operand types differ. Ordering is defined for numbers only. || and && short-circuit,
// so operands after the deciding one are never evaluated.
//
// Example:
//
//	ctx := logicexpr.NewContext().
//	    SetString("foo", "baaaar").
//	    SetInt("length", 1)
//
//	result, err := logicexpr.Evaluate(`foo =~ 'ba+r' && 2 > length`, ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result) // true
package logicexpr

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"regexp"
)

// Evaluator evaluates expressions. The zero configuration returned by New is pure:
// it has no side effects. An Evaluator is safe for concurrent use.
type Evaluator struct {
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger makes the evaluator report every evaluation at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEvaluator = New()

// Evaluate parses text and evaluates it against ctx using the default evaluator.
// A nil ctx behaves like an empty context.
func Evaluate(text string, ctx *Context) (bool, error) {
	return defaultEvaluator.Evaluate(text, ctx)
}

// Eval evaluates a parsed expression against ctx using the default evaluator.
func Eval(expr Expression, ctx *Context) (bool, error) {
	return defaultEvaluator.Eval(expr, ctx)
}

// Evaluate parses text and evaluates it against ctx.
func (e *Evaluator) Evaluate(text string, ctx *Context) (bool, error) {
	expr, err := Parse(text)
	if err != nil {
		if e.logger != nil {
			e.logFailure(text, err)
		}
		return false, err
	}
	return e.Eval(expr, ctx)
}

// Eval evaluates a parsed expression against ctx.
// The expression and the context are only read, so the same tree can be evaluated
// any number of times.
func (e *Evaluator) Eval(expr Expression, ctx *Context) (bool, error) {
	if expr == nil {
		return false, ErrInvalidExpression
	}

	result, err := e.evaluate(expr, ctx)
	if err != nil {
		if e.logger != nil {
			e.logFailure(describeExpression(expr), err)
		}
		return false, err
	}
	if e.logger != nil {
		e.logger.Debug("expression evaluated",
			slog.String("expression", describeExpression(expr)),
			slog.Bool("result", result))
	}
	return result, nil
}

// describeExpression renders expr for logging. Hand-built trees with missing
// nodes cannot be rendered.
func describeExpression(expr Expression) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("%T", expr)
		}
	}()
	return expr.String()
}

func (e *Evaluator) logFailure(text string, err error) {
	e.logger.Debug("expression failed",
		slog.String("expression", text),
		slog.String("error", err.Error()))
}

func (e *Evaluator) evaluate(expr Expression, ctx *Context) (bool, error) {
	switch n := expr.(type) {
	case *OrExpr:
		return e.evaluateOr(n, ctx)
	case *AndExpr:
		return e.evaluateAnd(n, ctx)
	case *NotExpr:
		result, err := e.evaluate(n.Operand, ctx)
		if err != nil {
			return false, err
		}
		return !result, nil
	case *GroupExpr:
		return e.evaluate(n.Inner, ctx)
	case *BoolLiteral:
		return n.Value, nil
	case *IdentExpr:
		return e.evaluateIdent(n, ctx)
	case *ComparisonExpr:
		return e.evaluateComparison(n, ctx)
	}
	return false, fmt.Errorf("%w: unexpected node %T", ErrInvalidExpression, expr)
}

func (e *Evaluator) evaluateOr(expr *OrExpr, ctx *Context) (bool, error) {
	for _, operand := range expr.Operands {
		result, err := e.evaluate(operand, ctx)
		if err != nil {
			return false, err
		}
		if result {
			return true, nil
		}
	}
	return false, nil
}

func (e *Evaluator) evaluateAnd(expr *AndExpr, ctx *Context) (bool, error) {
	for _, operand := range expr.Operands {
		result, err := e.evaluate(operand, ctx)
		if err != nil {
			return false, err
		}
		if !result {
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) evaluateIdent(expr *IdentExpr, ctx *Context) (bool, error) {
	val, ok := ctx.Get(expr.Name)
	if !ok {
		return false, undefinedVariable(expr.Name)
	}
	b, ok := val.(BoolValue)
	if !ok {
		return false, &EvalError{Err: ErrExpectedBoolean, Name: expr.Name, Left: val.Type()}
	}
	return bool(b), nil
}

func (e *Evaluator) resolve(operand Operand, ctx *Context) (Value, error) {
	switch o := operand.(type) {
	case *LiteralExpr:
		return o.Value, nil
	case *IdentExpr:
		val, ok := ctx.Get(o.Name)
		if !ok {
			return nil, undefinedVariable(o.Name)
		}
		return val, nil
	}
	return nil, fmt.Errorf("%w: unexpected operand %T", ErrInvalidExpression, operand)
}

func (e *Evaluator) evaluateComparison(expr *ComparisonExpr, ctx *Context) (bool, error) {
	left, err := e.resolve(expr.Left, ctx)
	if err != nil {
		return false, err
	}

	right, err := e.resolve(expr.Right, ctx)
	if err != nil {
		return false, err
	}

	if !operatorSupports(expr.Operator, left.Type(), right.Type()) {
		return false, typeMismatch(expr.Operator, left, right)
	}

	switch expr.Operator {
	case TokenEq:
		return valuesEqual(left, right), nil
	case TokenNe:
		return !valuesEqual(left, right), nil
	case TokenLt:
		return compareNumbers(left, right, func(c int) bool { return c < 0 }), nil
	case TokenGt:
		return compareNumbers(left, right, func(c int) bool { return c > 0 }), nil
	case TokenLe:
		return compareNumbers(left, right, func(c int) bool { return c <= 0 }), nil
	case TokenGe:
		return compareNumbers(left, right, func(c int) bool { return c >= 0 }), nil
	}
	return matchPattern(left.(StringValue), right.(StringValue))
}

// valuesEqual compares values of the same type directly and mixed numbers as float64.
func valuesEqual(left, right Value) bool {
	if left.Type() == right.Type() {
		return left.Equal(right)
	}
	l, _ := toFloat(left)
	r, _ := toFloat(right)
	return l == r
}

// compareNumbers orders two numbers. Integers are compared exactly,
// mixed operands after promotion to float64.
func compareNumbers(left, right Value, accept func(int) bool) bool {
	if li, ok := left.(IntValue); ok {
		if ri, ok := right.(IntValue); ok {
			return accept(cmp.Compare(li, ri))
		}
	}

	l, _ := toFloat(left)
	r, _ := toFloat(right)

	// NaN is unordered: every ordering comparison with it is false.
	if math.IsNaN(l) || math.IsNaN(r) {
		return false
	}
	return accept(cmp.Compare(l, r))
}

// matchPattern searches for pattern anywhere in text.
func matchPattern(text, pattern StringValue) (bool, error) {
	re, err := regexp.Compile(string(pattern))
	if err != nil {
		return false, &EvalError{Err: ErrInvalidPattern, Pattern: string(pattern), Cause: err}
	}
	return re.MatchString(string(text)), nil
}
