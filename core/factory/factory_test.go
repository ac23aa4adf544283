package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engine struct {
	Tolerance float64
	MaxNodes  int
}

type engineConf struct {
	Tolerance float64 `json:"tolerance"`
	MaxNodes  int     `json:"max_nodes"`
}

func newEngine(conf map[string]any) (*engine, error) {
	var c engineConf
	if err := Decode(conf, &c); err != nil {
		return nil, err
	}
	return &engine{Tolerance: c.Tolerance, MaxNodes: c.MaxNodes}, nil
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*engine]()
	require.NoError(t, reg.Register("simplex", newEngine))

	inst, err := reg.Create(ModuleConfig{Type: "simplex", Conf: map[string]any{"max_nodes": 3, "tolerance": 1e-6}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.MaxNodes)
	assert.Equal(t, 1e-6, inst.Tolerance)
}

// Env overrides deliver strings.
func TestDecode_WeakTyping(t *testing.T) {
	var c engineConf
	require.NoError(t, Decode(map[string]any{"max_nodes": "250", "tolerance": "0.001"}, &c))
	assert.Equal(t, 250, c.MaxNodes)
	assert.Equal(t, 0.001, c.Tolerance)

	assert.Error(t, Decode(map[string]any{"max_nodes": "many"}, &c))
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }))
	assert.Error(t, reg.Register("y", nil))

	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.ErrorContains(t, err, "unknown module type")
	assert.Equal(t, []string{"x"}, reg.Names())
}
