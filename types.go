package logicexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type represents the data type of a value in the expression language.
type Type uint8

const (
	TypeString Type = iota
	TypeInt
	TypeFloat
	TypeBool
)

var typeNames = map[Type]string{
	TypeString: "string",
	TypeInt:    "integer",
	TypeFloat:  "float",
	TypeBool:   "boolean",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsNumeric reports whether values of this type take part in numeric ordering.
func (t Type) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// ParseType returns the Type named by s ("string", "integer", "float", "boolean").
// The short forms "int" and "bool" are accepted as well.
func ParseType(s string) (Type, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "integer", "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "boolean", "bool":
		return TypeBool, nil
	}
	return 0, fmt.Errorf("unknown type: %q", s)
}

// UnmarshalYAML decodes a type name, so schemas can be declared in YAML.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseType(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}

// Value is a typed value held in a Context or written as a literal.
// The set of implementations is closed: StringValue, IntValue, FloatValue and BoolValue.
type Value interface {
	Type() Type
	Equal(other Value) bool
	String() string
	value()
}

// StringValue represents a string value.
type StringValue string

func (s StringValue) Type() Type     { return TypeString }
func (s StringValue) String() string { return string(s) }
func (s StringValue) value()         {}
func (s StringValue) Equal(v Value) bool {
	other, ok := v.(StringValue)
	return ok && s == other
}

// IntValue represents a 64-bit signed integer value.
type IntValue int64

func (i IntValue) Type() Type     { return TypeInt }
func (i IntValue) String() string { return strconv.FormatInt(int64(i), 10) }
func (i IntValue) value()         {}
func (i IntValue) Equal(v Value) bool {
	other, ok := v.(IntValue)
	return ok && i == other
}

// FloatValue represents a 64-bit floating point value.
type FloatValue float64

func (f FloatValue) Type() Type { return TypeFloat }
func (f FloatValue) value()     {}
func (f FloatValue) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
func (f FloatValue) Equal(v Value) bool {
	other, ok := v.(FloatValue)
	return ok && f == other
}

// BoolValue represents a boolean value.
type BoolValue bool

func (b BoolValue) Type() Type     { return TypeBool }
func (b BoolValue) String() string { return strconv.FormatBool(bool(b)) }
func (b BoolValue) value()         {}
func (b BoolValue) Equal(v Value) bool {
	other, ok := v.(BoolValue)
	return ok && b == other
}

// ValueOf converts a Go value into a Value.
// Signed and unsigned integers that fit into int64 become IntValue, float32 and float64
// become FloatValue. Values that are already a Value are returned as is.
func ValueOf(v any) (Value, error) {
	switch val := v.(type) {
	case Value:
		return val, nil
	case string:
		return StringValue(val), nil
	case bool:
		return BoolValue(val), nil
	case int:
		return IntValue(val), nil
	case int8:
		return IntValue(val), nil
	case int16:
		return IntValue(val), nil
	case int32:
		return IntValue(val), nil
	case int64:
		return IntValue(val), nil
	case uint8:
		return IntValue(val), nil
	case uint16:
		return IntValue(val), nil
	case uint32:
		return IntValue(val), nil
	case uint:
		if uint64(val) > uint64(1<<63-1) {
			return nil, fmt.Errorf("integer out of range: %d", val)
		}
		return IntValue(val), nil
	case uint64:
		if val > uint64(1<<63-1) {
			return nil, fmt.Errorf("integer out of range: %d", val)
		}
		return IntValue(val), nil
	case float32:
		return FloatValue(val), nil
	case float64:
		return FloatValue(val), nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// toFloat promotes a numeric value to float64.
func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntValue:
		return float64(n), true
	case FloatValue:
		return float64(n), true
	}
	return 0, false
}
