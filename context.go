package logicexpr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Context holds the values that identifiers resolve to during evaluation.
//
// Evaluation only reads the context. It is safe to evaluate many expressions against
// one Context from multiple goroutines as long as nobody modifies it at the same time;
// the Context itself does no locking.
type Context struct {
	values map[string]Value
}

// NewContext creates a new empty context.
func NewContext() *Context {
	return &Context{
		values: make(map[string]Value),
	}
}

// NewContextFromMap builds a context from plain Go values, see ValueOf for the accepted types.
func NewContextFromMap(values map[string]any) (*Context, error) {
	ctx := NewContext()
	for name, raw := range values {
		v, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("context key %q: %w", name, err)
		}
		ctx.values[name] = v
	}
	return ctx, nil
}

// Insert sets a value in the context, replacing any previous value for key.
// Returns the context to allow method chaining.
func (ctx *Context) Insert(key string, value Value) *Context {
	if ctx.values == nil {
		ctx.values = make(map[string]Value)
	}
	ctx.values[key] = value
	return ctx
}

// SetString sets a string value in the context.
// Returns the context to allow method chaining.
func (ctx *Context) SetString(key string, value string) *Context {
	return ctx.Insert(key, StringValue(value))
}

// SetInt sets an integer value in the context.
// Returns the context to allow method chaining.
func (ctx *Context) SetInt(key string, value int64) *Context {
	return ctx.Insert(key, IntValue(value))
}

// SetFloat sets a float value in the context.
// Returns the context to allow method chaining.
func (ctx *Context) SetFloat(key string, value float64) *Context {
	return ctx.Insert(key, FloatValue(value))
}

// SetBool sets a boolean value in the context.
// Returns the context to allow method chaining.
func (ctx *Context) SetBool(key string, value bool) *Context {
	return ctx.Insert(key, BoolValue(value))
}

// Get retrieves a value from the context.
// Returns the value and true if found, or nil and false if not found.
// A nil context holds no values.
func (ctx *Context) Get(key string) (Value, bool) {
	if ctx == nil {
		return nil, false
	}
	val, ok := ctx.values[key]
	return val, ok
}

// Len returns the number of values in the context.
func (ctx *Context) Len() int {
	if ctx == nil {
		return 0
	}
	return len(ctx.values)
}

// Keys returns the context keys in sorted order.
func (ctx *Context) Keys() []string {
	if ctx == nil {
		return nil
	}
	keys := make([]string, 0, len(ctx.values))
	for k := range ctx.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalYAML decodes a flat YAML mapping. The scalar tag picks the value type:
// !!str, !!int, !!float and !!bool. Nested mappings and sequences are rejected.
func (ctx *Context) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: context must be a mapping", node.Line)
	}

	values := make(map[string]Value, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if valNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: context key %q: nested values are not supported", valNode.Line, keyNode.Value)
		}

		var raw any
		switch valNode.ShortTag() {
		case "!!str":
			raw = valNode.Value
		case "!!int":
			var n int64
			if err := valNode.Decode(&n); err != nil {
				return fmt.Errorf("line %d: context key %q: %w", valNode.Line, keyNode.Value, err)
			}
			raw = n
		case "!!float":
			var f float64
			if err := valNode.Decode(&f); err != nil {
				return fmt.Errorf("line %d: context key %q: %w", valNode.Line, keyNode.Value, err)
			}
			raw = f
		case "!!bool":
			var b bool
			if err := valNode.Decode(&b); err != nil {
				return fmt.Errorf("line %d: context key %q: %w", valNode.Line, keyNode.Value, err)
			}
			raw = b
		default:
			return fmt.Errorf("line %d: context key %q: unsupported value tag %s", valNode.Line, keyNode.Value, valNode.ShortTag())
		}

		v, err := ValueOf(raw)
		if err != nil {
			return fmt.Errorf("line %d: context key %q: %w", valNode.Line, keyNode.Value, err)
		}
		values[keyNode.Value] = v
	}

	ctx.values = values
	return nil
}

// UnmarshalJSON decodes a flat JSON object. Numbers without a fraction or exponent
// become integers, all other numbers become floats.
func (ctx *Context) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode context: %w", err)
	}

	values := make(map[string]Value, len(raw))
	for name, item := range raw {
		if num, ok := item.(json.Number); ok {
			n, err := decodeJSONNumber(num)
			if err != nil {
				return fmt.Errorf("context key %q: %w", name, err)
			}
			item = n
		}

		v, err := ValueOf(item)
		if err != nil {
			return fmt.Errorf("context key %q: %w", name, err)
		}
		values[name] = v
	}

	ctx.values = values
	return nil
}

// decodeJSONNumber keeps integer literals exact and rejects those outside int64.
func decodeJSONNumber(num json.Number) (any, error) {
	if !strings.ContainsAny(num.String(), ".eE") {
		n, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("integer out of range: %s", num)
		}
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %s", num)
	}
	return f, nil
}
