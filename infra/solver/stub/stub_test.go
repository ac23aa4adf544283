package stub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-sartori-v/mobauto2-decomp/core/factory"
	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
)

func model() *milp.Model {
	m := milp.NewModel("m")
	m.AddBinary("a", -3)
	m.AddBinary("b", -2)
	m.AddBinary("c", -1)
	return m
}

func TestStub_Values(t *testing.T) {
	e, err := New(Config{Values: []float64{1, 0}})
	require.NoError(t, err)
	sol, err := e.Solve(model())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, sol.Values)
	assert.Equal(t, -3.0, sol.Objective)
	assert.Equal(t, milp.StatusOptimal, sol.Status)
}

func TestStub_Fail(t *testing.T) {
	e, err := milp.NewEngine(factory.ModuleConfig{Type: "stub", Conf: map[string]any{"fail": "infeasible"}})
	require.NoError(t, err)
	_, err = e.Solve(model())
	assert.ErrorIs(t, err, milp.ErrInfeasible)

	_, err = New(Config{Fail: "tired"})
	assert.Error(t, err)
}

func TestStub_Closed(t *testing.T) {
	e, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, e.Close())
	_, err = e.Solve(model())
	assert.ErrorIs(t, err, milp.ErrInit)
}
