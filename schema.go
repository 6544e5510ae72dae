package logicexpr

import (
	"fmt"
	"regexp"
)

// Field represents a named identifier with a specific type in a schema.
type Field struct {
	Name string
	Type Type
}

// Schema declares the identifiers an expression may reference and their types.
// Validate uses it to reject expressions before they are evaluated.
type Schema struct {
	fields map[string]Field
}

// NewSchema creates a new schema.
// If field maps are provided, the schema is initialized with their fields;
// multiple maps are merged.
func NewSchema(fields ...map[string]Type) *Schema {
	s := &Schema{
		fields: make(map[string]Field),
	}
	for _, fieldMap := range fields {
		for name, fieldType := range fieldMap {
			s.AddField(name, fieldType)
		}
	}
	return s
}

// AddField adds a field to the schema with the specified name and type.
// Returns the schema to allow method chaining.
func (s *Schema) AddField(name string, fieldType Type) *Schema {
	s.fields[name] = Field{
		Name: name,
		Type: fieldType,
	}
	return s
}

// GetField retrieves a field from the schema by name.
func (s *Schema) GetField(name string) (Field, bool) {
	field, ok := s.fields[name]
	return field, ok
}

// Validate checks every identifier and comparison in the expression against the schema.
// It reports ErrUnknownField for undeclared identifiers and, as an *EvalError, the
// type errors that evaluating against a conforming context would produce.
func (s *Schema) Validate(expr Expression) error {
	switch e := expr.(type) {
	case nil:
		return ErrInvalidExpression
	case *OrExpr:
		return s.validateAll(e.Operands)
	case *AndExpr:
		return s.validateAll(e.Operands)
	case *NotExpr:
		return s.Validate(e.Operand)
	case *GroupExpr:
		return s.Validate(e.Inner)
	case *IdentExpr:
		field, err := s.lookup(e.Name)
		if err != nil {
			return err
		}
		if field.Type != TypeBool {
			return &EvalError{Err: ErrExpectedBoolean, Name: e.Name, Left: field.Type}
		}
	case *ComparisonExpr:
		return s.validateComparison(e)
	}
	return nil
}

func (s *Schema) validateAll(exprs []Expression) error {
	for _, expr := range exprs {
		if err := s.Validate(expr); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) lookup(name string) (Field, error) {
	field, ok := s.GetField(name)
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return field, nil
}

func (s *Schema) operandType(operand Operand) (Type, error) {
	switch o := operand.(type) {
	case *LiteralExpr:
		return o.Value.Type(), nil
	case *IdentExpr:
		field, err := s.lookup(o.Name)
		if err != nil {
			return 0, err
		}
		return field.Type, nil
	}
	return 0, fmt.Errorf("unsupported operand %T", operand)
}

func (s *Schema) validateComparison(expr *ComparisonExpr) error {
	left, err := s.operandType(expr.Left)
	if err != nil {
		return err
	}
	right, err := s.operandType(expr.Right)
	if err != nil {
		return err
	}

	if !operatorSupports(expr.Operator, left, right) {
		return &EvalError{Err: ErrTypeMismatch, Operator: expr.Operator, Left: left, Right: right}
	}

	if expr.Operator == TokenMatch {
		if lit, ok := expr.Right.(*LiteralExpr); ok {
			pattern := lit.Value.String()
			if _, err := regexp.Compile(pattern); err != nil {
				return &EvalError{Err: ErrInvalidPattern, Pattern: pattern, Cause: err}
			}
		}
	}
	return nil
}

// operatorSupports reports whether op is defined for operands of the given types.
func operatorSupports(op TokenType, left, right Type) bool {
	switch op {
	case TokenEq, TokenNe:
		return (left == right && left != TypeBool) || (left.IsNumeric() && right.IsNumeric())
	case TokenLt, TokenGt, TokenLe, TokenGe:
		return left.IsNumeric() && right.IsNumeric()
	case TokenMatch:
		return left == TypeString && right == TypeString
	}
	return false
}
