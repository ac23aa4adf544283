package milp

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knapsack() *Model {
	m := NewModel("knap")
	a := m.AddBinary("a", -3)
	b := m.AddBinary("b", -2)
	m.AddRow("cap", []Term{{a, 2}, {b, 2}}, LessEqual, 2)
	return m
}

func TestModelObjectiveAndFeasibility(t *testing.T) {
	m := knapsack()
	require.NoError(t, m.Validate())
	assert.Equal(t, 2, m.NumVars())
	assert.False(t, m.Empty())

	assert.InDelta(t, -3, m.Objective([]float64{1, 0}), 1e-9)
	assert.NoError(t, m.CheckFeasible([]float64{1, 0}, 1e-9))
	assert.ErrorContains(t, m.CheckFeasible([]float64{1, 1}, 1e-9), "row cap violated")
	assert.ErrorContains(t, m.CheckFeasible([]float64{0.5, 0}, 1e-9), "not integral")
	assert.ErrorContains(t, m.CheckFeasible([]float64{1}, 1e-9), "1 values")
}

func TestModelValidate(t *testing.T) {
	m := knapsack()
	m.Rows[0].Terms = append(m.Rows[0].Terms, Term{Var: 5, Coef: 1})
	assert.ErrorContains(t, m.Validate(), "out of range")

	m = knapsack()
	m.Vars[0].Lower = 2
	assert.ErrorContains(t, m.Validate(), "above upper bound")

	m = knapsack()
	m.Rows[0].RHS = math.NaN()
	assert.Error(t, m.Validate())

	assert.True(t, NewModel("empty").Empty())
}

func TestSolveErrorSentinels(t *testing.T) {
	cases := []struct {
		status Status
		want   error
	}{
		{StatusInfeasible, ErrInfeasible},
		{StatusUnbounded, ErrUnbounded},
		{StatusInitFailed, ErrInit},
		{StatusLimit, ErrLimit},
	}
	for _, c := range cases {
		err := fmt.Errorf("run: %w", Fail(c.status, nil))
		assert.True(t, errors.Is(err, c.want), c.status.String())
		assert.Equal(t, c.status, StatusOf(err))
	}
	assert.False(t, errors.Is(Fail(StatusInfeasible, nil), ErrUnbounded))
	assert.Equal(t, StatusInitFailed, StatusOf(errors.New("boom")))
	assert.Equal(t, StatusOptimal, StatusOf(nil))

	inner := errors.New("lp: singular")
	assert.True(t, errors.Is(Fail(StatusInitFailed, inner), inner))
}

func TestStatusText(t *testing.T) {
	for st := StatusOptimal; st <= StatusLimit; st++ {
		b, err := st.MarshalText()
		require.NoError(t, err)
		var got Status
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, st, got)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("solved")))
}
