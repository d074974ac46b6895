package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetIntOption(t *testing.T) {
	opts := map[string]any{
		"int":     5,
		"int64":   int64(6),
		"float64": 7.0, // YAML and JSON decoders produce float64
		"string":  "8",
	}

	assert.Equal(t, 5, GetIntOption(opts, "int", 1))
	assert.Equal(t, 6, GetIntOption(opts, "int64", 1))
	assert.Equal(t, 7, GetIntOption(opts, "float64", 1))
	assert.Equal(t, 1, GetIntOption(opts, "string", 1))
	assert.Equal(t, 1, GetIntOption(opts, "missing", 1))
	assert.Equal(t, 1, GetIntOption(nil, "int", 1))
}

func TestGetStringOption(t *testing.T) {
	opts := map[string]any{"mode": "strict", "count": 3}
	assert.Equal(t, "strict", GetStringOption(opts, "mode", "loose"))
	assert.Equal(t, "loose", GetStringOption(opts, "count", "loose"))
	assert.Equal(t, "loose", GetStringOption(opts, "missing", "loose"))
}

func TestGetBoolOption(t *testing.T) {
	opts := map[string]any{"on": true}
	assert.True(t, GetBoolOption(opts, "on", false))
	assert.False(t, GetBoolOption(opts, "off", false))
}

func TestGetStringSliceOption(t *testing.T) {
	opts := map[string]any{
		"strings": []string{"a", "b"},
		"anys":    []any{"c", "d"},
		"mixed":   []any{"e", 1},
	}

	assert.Equal(t, []string{"a", "b"}, GetStringSliceOption(opts, "strings", nil))
	assert.Equal(t, []string{"c", "d"}, GetStringSliceOption(opts, "anys", nil))
	assert.Nil(t, GetStringSliceOption(opts, "mixed", nil))
	assert.Equal(t, []string{"z"}, GetStringSliceOption(opts, "missing", []string{"z"}))
}
