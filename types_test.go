package logicexpr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "integer", TypeInt.String())
	assert.Equal(t, "float", TypeFloat.String())
	assert.Equal(t, "boolean", TypeBool.String())
	assert.Equal(t, "unknown", Type(99).String())
}

func TestTypeIsNumeric(t *testing.T) {
	assert.True(t, TypeInt.IsNumeric())
	assert.True(t, TypeFloat.IsNumeric())
	assert.False(t, TypeString.IsNumeric())
	assert.False(t, TypeBool.IsNumeric())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"string", TypeString},
		{"integer", TypeInt},
		{"int", TypeInt},
		{"float", TypeFloat},
		{"boolean", TypeBool},
		{"bool", TypeBool},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseType("ip")
		assert.Error(t, err)
	})
}

func TestTypeUnmarshalYAML(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var fields map[string]Type
		err := yaml.Unmarshal([]byte("name: string\ncount: integer\nratio: float\nenabled: bool\n"), &fields)
		require.NoError(t, err)

		assert.Equal(t, map[string]Type{
			"name":    TypeString,
			"count":   TypeInt,
			"ratio":   TypeFloat,
			"enabled": TypeBool,
		}, fields)
	})

	t.Run("invalid", func(t *testing.T) {
		var fields map[string]Type
		err := yaml.Unmarshal([]byte("name: text\n"), &fields)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})
}

func TestValues(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		v := StringValue("abc")
		assert.Equal(t, TypeString, v.Type())
		assert.Equal(t, "abc", v.String())
		assert.True(t, v.Equal(StringValue("abc")))
		assert.False(t, v.Equal(StringValue("abd")))
		assert.False(t, v.Equal(IntValue(1)))
	})

	t.Run("integer", func(t *testing.T) {
		v := IntValue(-42)
		assert.Equal(t, TypeInt, v.Type())
		assert.Equal(t, "-42", v.String())
		assert.True(t, v.Equal(IntValue(-42)))
		assert.False(t, v.Equal(FloatValue(-42)))
	})

	t.Run("float", func(t *testing.T) {
		v := FloatValue(1.5)
		assert.Equal(t, TypeFloat, v.Type())
		assert.Equal(t, "1.5", v.String())
		assert.Equal(t, "3.0", FloatValue(3).String())
		assert.Equal(t, "+Inf", FloatValue(math.Inf(1)).String())
		assert.Equal(t, "NaN", FloatValue(math.NaN()).String())
		assert.True(t, v.Equal(FloatValue(1.5)))
		assert.False(t, v.Equal(StringValue("1.5")))
	})

	t.Run("boolean", func(t *testing.T) {
		v := BoolValue(true)
		assert.Equal(t, TypeBool, v.Type())
		assert.Equal(t, "true", v.String())
		assert.True(t, v.Equal(BoolValue(true)))
		assert.False(t, v.Equal(BoolValue(false)))
	})
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"string", "x", StringValue("x")},
		{"bool", true, BoolValue(true)},
		{"int", 7, IntValue(7)},
		{"int8", int8(-8), IntValue(-8)},
		{"int16", int16(16), IntValue(16)},
		{"int32", int32(32), IntValue(32)},
		{"int64", int64(64), IntValue(64)},
		{"uint8", uint8(8), IntValue(8)},
		{"uint16", uint16(16), IntValue(16)},
		{"uint32", uint32(32), IntValue(32)},
		{"uint", uint(10), IntValue(10)},
		{"uint64", uint64(1 << 40), IntValue(1 << 40)},
		{"float32", float32(0.5), FloatValue(0.5)},
		{"float64", 2.25, FloatValue(2.25)},
		{"value", IntValue(3), IntValue(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		for _, input := range []any{nil, []string{"a"}, map[string]any{}, struct{}{}} {
			_, err := ValueOf(input)
			assert.Error(t, err)
		}
	})

	t.Run("uint64 overflow", func(t *testing.T) {
		_, err := ValueOf(uint64(math.MaxUint64))
		assert.Error(t, err)
	})
}
