package logicexpr

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type conformanceCase struct {
	Name       string   `yaml:"name"`
	Expression string   `yaml:"expression"`
	Context    *Context `yaml:"context"`
	Want       bool     `yaml:"want"`
	Error      string   `yaml:"error"`
}

var conformanceErrors = map[string]error{
	"lex":                ErrLex,
	"parse":              ErrParse,
	"undefined variable": ErrUndefinedVariable,
	"type mismatch":      ErrTypeMismatch,
	"invalid pattern":    ErrInvalidPattern,
	"expected boolean":   ErrExpectedBoolean,
}

func TestConformance(t *testing.T) {
	data, err := os.ReadFile("testdata/conformance.yaml")
	require.NoError(t, err)

	var cases []conformanceCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			result, err := Evaluate(tc.Expression, tc.Context)

			if tc.Error == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.Want, result)
				return
			}

			kind, ok := conformanceErrors[tc.Error]
			require.True(t, ok, "unknown error kind %q", tc.Error)
			require.Error(t, err)
			assert.ErrorIs(t, err, kind)
			assert.False(t, result)
		})
	}
}
